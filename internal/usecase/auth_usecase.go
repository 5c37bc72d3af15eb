package usecase

import (
	"context"
	"errors"

	"trial-bridge/config"
	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"
	repoImpl "trial-bridge/internal/repository"
	"trial-bridge/internal/service"
	"trial-bridge/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrPhoneAlreadyExists      = errors.New("phone number already exists")
	ErrUsernameAlreadyExists   = errors.New("username already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTokenRevoked            = errors.New("token has been revoked")
	ErrUserNotFound            = errors.New("user not found")
	ErrUnauthenticated         = errors.New("no authenticated user in context")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterTrialTeam(ctx context.Context, req *dto.RegisterTrialTeamRequest) (*dto.UserResponse, error)
	LoginPatient(ctx context.Context, req *dto.LoginPatientRequest) (*dto.TokenResponse, error)
	LoginTrialTeam(ctx context.Context, req *dto.LoginTrialTeamRequest) (*dto.TokenResponse, error)
	// Logout revokes the session's access token and, when given, the refresh token.
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
	jwtService         *jwt.JWTService
	redisClient        *redis.Client
	authConfig         config.AuthConfig
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	authConfig config.AuthConfig,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
		jwtService:         jwtService,
		redisClient:        redisClient,
		authConfig:         authConfig,
	}
}

// RegisterPatient creates the account and an empty patient profile together.
// It does not sign the patient in.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.authConfig.BcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	phone := req.Phone
	active := true
	user := &entity.User{
		Email:    req.Email,
		Phone:    &phone,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
		IsActive: &active,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		return nil, u.mapRegisterError(err)
	}

	profile := &entity.PatientProfile{
		Email:          user.Email,
		UserID:         &user.ID,
		Name:           req.FullName,
		Phone:          req.Phone,
		MedicalHistory: datatypes.NewJSONType(entity.EmptyMedicalHistory()),
	}
	if err := u.patientProfileRepo.Create(ctx, tx, profile); err != nil {
		if repoImpl.IsDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "users", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *authUsecase) RegisterTrialTeam(ctx context.Context, req *dto.RegisterTrialTeamRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.authConfig.BcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	username := req.Username
	active := true
	user := &entity.User{
		Email:    req.Email,
		Username: &username,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDTrialTeam,
		IsActive: &active,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		return nil, u.mapRegisterError(err)
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "users", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *authUsecase) mapRegisterError(err error) error {
	switch {
	case repoImpl.IsDuplicateKeyError(err, "email"):
		return ErrEmailAlreadyExists
	case repoImpl.IsDuplicateKeyError(err, "phone"):
		return ErrPhoneAlreadyExists
	case repoImpl.IsDuplicateKeyError(err, "username"):
		return ErrUsernameAlreadyExists
	}
	u.log.Warnf("Failed to create user: %+v", err)
	return err
}

// LoginPatient accepts email+password or phone+verification code.
// A failed attempt issues nothing.
func (u *authUsecase) LoginPatient(ctx context.Context, req *dto.LoginPatientRequest) (*dto.TokenResponse, error) {
	if req.Phone != "" && req.Email == "" {
		return u.loginByPhone(ctx, req.Phone, req.VerificationCode)
	}

	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if !canSignIn(user, entity.RoleIDPatient) {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, "email")
}

func (u *authUsecase) loginByPhone(ctx context.Context, phone, code string) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByPhone(ctx, u.db, phone)
	if err != nil {
		u.log.Warnf("Failed to find user by phone: %+v", err)
		return nil, err
	}
	if !canSignIn(user, entity.RoleIDPatient) {
		return nil, ErrInvalidCredentials
	}
	if code == "" || code != u.authConfig.PhoneVerificationCode {
		return nil, ErrInvalidVerificationCode
	}

	return u.issueTokens(ctx, user, "phone")
}

func (u *authUsecase) LoginTrialTeam(ctx context.Context, req *dto.LoginTrialTeamRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if !canSignIn(user, entity.RoleIDTrialTeam) {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, "username")
}

func canSignIn(user *entity.User, roleID int) bool {
	if user == nil || user.RoleID != roleID {
		return false
	}
	return user.IsActive == nil || *user.IsActive
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, method string) (*dto.TokenResponse, error) {
	identity := jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		RoleID: user.RoleID,
	}
	if user.Username != nil {
		identity.Username = *user.Username
	}
	if user.Phone != nil {
		identity.Phone = *user.Phone
	}

	tokens, err := u.storeTokens(ctx, identity)
	if err != nil {
		return nil, err
	}
	tokens.User = converter.UserToResponse(user)

	// audit failures never block a login
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, map[string]interface{}{
		"method": method,
		"role":   entity.RoleNameByID(user.RoleID),
	}); err != nil {
		u.log.Warnf("Failed to audit login for %s: %+v", user.ID, err)
	}

	return tokens, nil
}

func (u *authUsecase) storeTokens(ctx context.Context, identity jwt.Identity) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, middleware.AccessTokenKey(identity.UserID, accessTokenID), "valid", u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, middleware.RefreshTokenKey(identity.UserID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	accessTokenID, _ := middleware.GetTokenIDFromContext(ctx)

	keys := []string{middleware.AccessTokenKey(userID, accessTokenID)}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
			return ErrInvalidToken
		}
		keys = append(keys, middleware.RefreshTokenKey(userID, claims.TokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout, nil); err != nil {
		u.log.Warnf("Failed to audit logout for %s: %+v", userID, err)
	}

	return nil
}

// RefreshToken rotates the pair: the presented refresh token is consumed.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Del reports 0 when the token was already used or revoked
	deleted, err := u.redisClient.Del(ctx, middleware.RefreshTokenKey(claims.UserID, claims.TokenID)).Result()
	if err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrTokenRevoked
	}

	return u.storeTokens(ctx, claims.Identity())
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
