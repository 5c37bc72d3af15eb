// Package fixture migrates the schema and loads the demo dataset shipped
// with the portal: patients, trial team accounts, trials, applications,
// educational resources, messages, forum threads and rewards.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed data/*.yaml
var files embed.FS

// Migrate creates or updates every table and makes sure the two roles exist.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(entity.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return repository.NewRoleRepository().EnsureDefaults(ctx, db)
}

type userFixture struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
	FullName string `yaml:"full_name"`
}

type usersFile struct {
	Patients  []userFixture `yaml:"patients"`
	TrialTeam []userFixture `yaml:"trial_team"`
}

type trialFixture struct {
	ID                  string   `yaml:"id"`
	Title               string   `yaml:"title"`
	Description         string   `yaml:"description"`
	Status              string   `yaml:"status"`
	Location            string   `yaml:"location"`
	StartDate           string   `yaml:"start_date"`
	EndDate             string   `yaml:"end_date"`
	EligibilityCriteria []string `yaml:"eligibility_criteria"`
	Compensation        string   `yaml:"compensation"`
	SponsoredBy         string   `yaml:"sponsored_by"`
	ContactEmail        string   `yaml:"contact_email"`
	ContactPhone        string   `yaml:"contact_phone"`
	Enrolled            []string `yaml:"enrolled"`
}

type applicationFixture struct {
	ID             string `yaml:"id"`
	PatientEmail   string `yaml:"patient_email"`
	TrialID        string `yaml:"trial_id"`
	Status         string `yaml:"status"`
	SubmissionDate string `yaml:"submission_date"`
	Notes          string `yaml:"notes"`
}

type profileFixture struct {
	Email          string `yaml:"email"`
	Name           string `yaml:"name"`
	Age            int    `yaml:"age"`
	Gender         string `yaml:"gender"`
	Phone          string `yaml:"phone"`
	Address        string `yaml:"address"`
	MedicalHistory struct {
		Conditions    []string `yaml:"conditions"`
		Medications   []string `yaml:"medications"`
		Allergies     []string `yaml:"allergies"`
		Surgeries     []string `yaml:"surgeries"`
		FamilyHistory []string `yaml:"family_history"`
	} `yaml:"medical_history"`
	InsuranceInfo *struct {
		Provider       string `yaml:"provider"`
		PolicyNumber   string `yaml:"policy_number"`
		GroupNumber    string `yaml:"group_number"`
		ExpirationDate string `yaml:"expiration_date"`
	} `yaml:"insurance_info"`
	EmergencyContact *entity.EmergencyContact `yaml:"emergency_contact"`
}

type recordFixture struct {
	ID           string         `yaml:"id"`
	PatientEmail string         `yaml:"patient_email"`
	Date         string         `yaml:"date"`
	Type         string         `yaml:"type"`
	Data         map[string]any `yaml:"data"`
	Provider     string         `yaml:"provider"`
}

type resourceFixture struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Type            string   `yaml:"type"`
	Content         string   `yaml:"content"`
	Summary         string   `yaml:"summary"`
	Tags            []string `yaml:"tags"`
	DatePublished   string   `yaml:"date_published"`
	Author          string   `yaml:"author"`
	ViewCount       int      `yaml:"view_count"`
	RelatedTrialIDs []string `yaml:"related_trial_ids"`
}

type feedbackFixture struct {
	ID            string `yaml:"id"`
	ResourceID    string `yaml:"resource_id"`
	PatientEmail  string `yaml:"patient_email"`
	Rating        int    `yaml:"rating"`
	Comment       string `yaml:"comment"`
	DateSubmitted string `yaml:"date_submitted"`
}

type messageFixture struct {
	ID          string              `yaml:"id"`
	SenderID    string              `yaml:"sender_id"`
	ReceiverID  string              `yaml:"receiver_id"`
	SenderType  string              `yaml:"sender_type"`
	Content     string              `yaml:"content"`
	Timestamp   string              `yaml:"timestamp"`
	Read        bool                `yaml:"read"`
	Attachments []entity.Attachment `yaml:"attachments"`
}

type commentFixture struct {
	ID              string `yaml:"id"`
	Content         string `yaml:"content"`
	AuthorID        string `yaml:"author_id"`
	AuthorType      string `yaml:"author_type"`
	AuthorName      string `yaml:"author_name"`
	Timestamp       string `yaml:"timestamp"`
	Likes           int    `yaml:"likes"`
	ParentCommentID string `yaml:"parent_comment_id"`
}

type postFixture struct {
	ID         string           `yaml:"id"`
	Title      string           `yaml:"title"`
	Content    string           `yaml:"content"`
	AuthorID   string           `yaml:"author_id"`
	AuthorType string           `yaml:"author_type"`
	AuthorName string           `yaml:"author_name"`
	Timestamp  string           `yaml:"timestamp"`
	Category   string           `yaml:"category"`
	Tags       []string         `yaml:"tags"`
	Likes      int              `yaml:"likes"`
	Comments   []commentFixture `yaml:"comments"`
}

type rewardsFile struct {
	Rewards []struct {
		ID             string `yaml:"id"`
		Title          string `yaml:"title"`
		Description    string `yaml:"description"`
		Type           string `yaml:"type"`
		PointsRequired int    `yaml:"points_required"`
		Available      bool   `yaml:"available"`
		ExpiryDate     string `yaml:"expiry_date"`
	} `yaml:"rewards"`
	Achievements []struct {
		ID            string `yaml:"id"`
		Title         string `yaml:"title"`
		Description   string `yaml:"description"`
		PointsAwarded int    `yaml:"points_awarded"`
	} `yaml:"achievements"`
	Completed []struct {
		PatientEmail  string `yaml:"patient_email"`
		AchievementID string `yaml:"achievement_id"`
		DateCompleted string `yaml:"date_completed"`
	} `yaml:"completed"`
}

func load(name string, out any) error {
	raw, err := files.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Seed loads the demo dataset in one transaction. It does nothing when the
// registry already holds trials, so it is safe to call on every startup.
// passwordCost is the bcrypt cost for the demo accounts.
func Seed(ctx context.Context, db *gorm.DB, passwordCost int) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Trial{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func(*gorm.DB) error{
			func(tx *gorm.DB) error { return seedUsers(tx, passwordCost) },
			seedTrials,
			seedApplications,
			seedProfiles,
			seedHealthRecords,
			seedResources,
			seedMessages,
			seedForum,
			seedRewards,
		}
		for _, step := range steps {
			if err := step(tx); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedUsers(tx *gorm.DB, cost int) error {
	var f usersFile
	if err := load("users.yaml", &f); err != nil {
		return err
	}

	users := make([]entity.User, 0, len(f.Patients)+len(f.TrialTeam))
	for _, p := range f.Patients {
		user, err := newUser(p, entity.RoleIDPatient, cost)
		if err != nil {
			return err
		}
		phone := p.Phone
		user.Phone = &phone
		users = append(users, user)
	}
	for _, t := range f.TrialTeam {
		user, err := newUser(t, entity.RoleIDTrialTeam, cost)
		if err != nil {
			return err
		}
		username := t.Username
		user.Username = &username
		users = append(users, user)
	}

	return tx.Omit(clause.Associations).Create(&users).Error
}

func newUser(f userFixture, roleID, cost int) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), cost)
	if err != nil {
		return entity.User{}, err
	}
	active := true
	return entity.User{
		RoleID:   roleID,
		Email:    f.Email,
		Password: string(hash),
		FullName: f.FullName,
		IsActive: &active,
	}, nil
}

func seedTrials(tx *gorm.DB) error {
	var trials []trialFixture
	if err := load("trials.yaml", &trials); err != nil {
		return err
	}

	for _, t := range trials {
		trial := entity.Trial{
			ID:                  t.ID,
			Title:               t.Title,
			Description:         t.Description,
			Status:              entity.TrialStatus(t.Status),
			Location:            t.Location,
			StartDate:           t.StartDate,
			EndDate:             t.EndDate,
			EligibilityCriteria: datatypes.NewJSONSlice(nonNil(t.EligibilityCriteria)),
			Compensation:        t.Compensation,
			SponsoredBy:         t.SponsoredBy,
			ContactEmail:        t.ContactEmail,
			ContactPhone:        t.ContactPhone,
		}
		if err := tx.Omit("Enrollments").Create(&trial).Error; err != nil {
			return err
		}
		for _, email := range t.Enrolled {
			enrollment := entity.TrialEnrollment{TrialID: t.ID, PatientEmail: email}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedApplications(tx *gorm.DB) error {
	var apps []applicationFixture
	if err := load("applications.yaml", &apps); err != nil {
		return err
	}

	rows := make([]entity.TrialApplication, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, entity.TrialApplication{
			ID:             a.ID,
			PatientEmail:   a.PatientEmail,
			TrialID:        a.TrialID,
			Status:         entity.ApplicationStatus(a.Status),
			SubmissionDate: a.SubmissionDate,
			Notes:          a.Notes,
		})
	}
	return tx.Omit("Trial").Create(&rows).Error
}

func seedProfiles(tx *gorm.DB) error {
	var profiles []profileFixture
	if err := load("patients.yaml", &profiles); err != nil {
		return err
	}

	for _, p := range profiles {
		var user entity.User
		if err := tx.Where("email = ?", p.Email).First(&user).Error; err != nil {
			return fmt.Errorf("profile %s has no account: %w", p.Email, err)
		}

		history := entity.MedicalHistory{
			Conditions:    nonNil(p.MedicalHistory.Conditions),
			Medications:   nonNil(p.MedicalHistory.Medications),
			Allergies:     nonNil(p.MedicalHistory.Allergies),
			Surgeries:     nonNil(p.MedicalHistory.Surgeries),
			FamilyHistory: nonNil(p.MedicalHistory.FamilyHistory),
		}
		var insurance *entity.InsuranceInfo
		if p.InsuranceInfo != nil {
			insurance = &entity.InsuranceInfo{
				Provider:       p.InsuranceInfo.Provider,
				PolicyNumber:   p.InsuranceInfo.PolicyNumber,
				GroupNumber:    p.InsuranceInfo.GroupNumber,
				ExpirationDate: p.InsuranceInfo.ExpirationDate,
			}
		}

		profile := entity.PatientProfile{
			Email:            p.Email,
			UserID:           &user.ID,
			Name:             p.Name,
			Age:              p.Age,
			Gender:           p.Gender,
			Phone:            p.Phone,
			Address:          p.Address,
			MedicalHistory:   datatypes.NewJSONType(history),
			InsuranceInfo:    datatypes.NewJSONType(insurance),
			EmergencyContact: datatypes.NewJSONType(p.EmergencyContact),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
	}

	// accounts without demo data still get an empty profile
	var orphans []entity.User
	err := tx.Where("role_id = ? AND email NOT IN (?)", entity.RoleIDPatient,
		tx.Model(&entity.PatientProfile{}).Select("email")).Find(&orphans).Error
	if err != nil {
		return err
	}
	for _, u := range orphans {
		profile := entity.PatientProfile{
			Email:            u.Email,
			UserID:           &u.ID,
			Name:             u.FullName,
			MedicalHistory:   datatypes.NewJSONType(entity.EmptyMedicalHistory()),
			InsuranceInfo:    datatypes.NewJSONType[*entity.InsuranceInfo](nil),
			EmergencyContact: datatypes.NewJSONType[*entity.EmergencyContact](nil),
		}
		if u.Phone != nil {
			profile.Phone = *u.Phone
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedHealthRecords(tx *gorm.DB) error {
	var records []recordFixture
	if err := load("health_records.yaml", &records); err != nil {
		return err
	}

	rows := make([]entity.HealthRecord, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r.Data)
		if err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		rows = append(rows, entity.HealthRecord{
			ID:           r.ID,
			PatientEmail: r.PatientEmail,
			Date:         r.Date,
			Type:         entity.HealthRecordType(r.Type),
			Data:         datatypes.JSON(data),
			Provider:     r.Provider,
		})
	}
	return tx.Create(&rows).Error
}

func seedResources(tx *gorm.DB) error {
	var resources []resourceFixture
	if err := load("resources.yaml", &resources); err != nil {
		return err
	}
	var feedback []feedbackFixture
	if err := load("feedback.yaml", &feedback); err != nil {
		return err
	}

	rows := make([]entity.EducationalResource, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, entity.EducationalResource{
			ID:              r.ID,
			Title:           r.Title,
			Type:            entity.ResourceType(r.Type),
			Content:         r.Content,
			Summary:         r.Summary,
			Tags:            datatypes.NewJSONSlice(nonNil(r.Tags)),
			DatePublished:   r.DatePublished,
			Author:          r.Author,
			ViewCount:       r.ViewCount,
			RelatedTrialIDs: datatypes.NewJSONSlice(nonNil(r.RelatedTrialIDs)),
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}

	ratings := make([]entity.PatientFeedback, 0, len(feedback))
	for _, f := range feedback {
		ratings = append(ratings, entity.PatientFeedback{
			ID:            f.ID,
			ResourceID:    f.ResourceID,
			PatientEmail:  f.PatientEmail,
			Rating:        f.Rating,
			Comment:       f.Comment,
			DateSubmitted: f.DateSubmitted,
		})
	}
	return tx.Create(&ratings).Error
}

func seedMessages(tx *gorm.DB) error {
	var messages []messageFixture
	if err := load("messages.yaml", &messages); err != nil {
		return err
	}

	rows := make([]entity.Message, 0, len(messages))
	for _, m := range messages {
		ts, err := time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			return fmt.Errorf("message %s: %w", m.ID, err)
		}
		rows = append(rows, entity.Message{
			ID:          m.ID,
			SenderID:    m.SenderID,
			ReceiverID:  m.ReceiverID,
			SenderType:  entity.ParticipantType(m.SenderType),
			Content:     m.Content,
			Timestamp:   ts.UTC(),
			Read:        m.Read,
			Attachments: datatypes.NewJSONSlice(nonNil(m.Attachments)),
		})
	}
	return tx.Create(&rows).Error
}

func seedForum(tx *gorm.DB) error {
	var posts []postFixture
	if err := load("forum.yaml", &posts); err != nil {
		return err
	}

	for _, p := range posts {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return fmt.Errorf("post %s: %w", p.ID, err)
		}
		post := entity.ForumPost{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			AuthorID:   p.AuthorID,
			AuthorType: entity.ParticipantType(p.AuthorType),
			AuthorName: p.AuthorName,
			Timestamp:  ts.UTC(),
			Category:   entity.ForumCategory(p.Category),
			Tags:       datatypes.NewJSONSlice(nonNil(p.Tags)),
			Likes:      p.Likes,
		}
		if err := tx.Omit("Comments").Create(&post).Error; err != nil {
			return err
		}
		for _, c := range p.Comments {
			commentTS, err := time.Parse(time.RFC3339, c.Timestamp)
			if err != nil {
				return fmt.Errorf("comment %s: %w", c.ID, err)
			}
			comment := entity.ForumComment{
				ID:         c.ID,
				PostID:     p.ID,
				Content:    c.Content,
				AuthorID:   c.AuthorID,
				AuthorType: entity.ParticipantType(c.AuthorType),
				AuthorName: c.AuthorName,
				Timestamp:  commentTS.UTC(),
				Likes:      c.Likes,
			}
			if c.ParentCommentID != "" {
				parent := c.ParentCommentID
				comment.ParentCommentID = &parent
			}
			if err := tx.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedRewards(tx *gorm.DB) error {
	var f rewardsFile
	if err := load("rewards.yaml", &f); err != nil {
		return err
	}

	for _, r := range f.Rewards {
		reward := entity.Reward{
			ID:             r.ID,
			Title:          r.Title,
			Description:    r.Description,
			Type:           entity.RewardType(r.Type),
			PointsRequired: r.PointsRequired,
			Available:      r.Available,
			ExpiryDate:     r.ExpiryDate,
		}
		if err := tx.Create(&reward).Error; err != nil {
			return err
		}
	}
	for _, a := range f.Achievements {
		achievement := entity.Achievement{
			ID:            a.ID,
			Title:         a.Title,
			Description:   a.Description,
			PointsAwarded: a.PointsAwarded,
		}
		if err := tx.Create(&achievement).Error; err != nil {
			return err
		}
	}
	for _, c := range f.Completed {
		award := entity.PatientAchievement{
			PatientEmail:  c.PatientEmail,
			AchievementID: c.AchievementID,
			DateCompleted: c.DateCompleted,
		}
		if err := tx.Omit("Achievement").Create(&award).Error; err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
