package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
)

type contentRemote interface {
	CreateMaterial(ctx context.Context, identity models.Identity, classroomID int64, input models.MaterialInput) (*models.Material, error)
	UpdateMaterial(ctx context.Context, identity models.Identity, classroomID, materialID int64, input models.MaterialInput) (*models.Material, error)
	SendMessage(ctx context.Context, identity models.Identity, classroomID int64, input models.MessageInput) (*models.Message, error)
	SetMeetLink(ctx context.Context, identity models.Identity, classroomID int64, link string) error
}

// ContentService dispatches materials, messages and the meet link.
type ContentService struct {
	remote   contentRemote
	activity activityRecorder
	logger   *zap.Logger
}

// NewContentService constructs the service.
func NewContentService(remote contentRemote, activity activityRecorder, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{remote: remote, activity: activity, logger: logger}
}

// CreateMaterial uploads a material.
func (s *ContentService) CreateMaterial(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MaterialForm) (*models.Material, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	material, err := s.remote.CreateMaterial(ctx, identity, classroomID, models.MaterialInput{
		Title:       form.Title,
		Description: form.Description,
		File:        form.File,
	})
	if err != nil {
		return nil, err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionMaterialCreate,
		Resource:    "material",
		ResourceID:  int64Ptr(material.ID),
		ClassroomID: classroomID,
	})
	return material, nil
}

// UpdateMaterial edits a material; the file is replaced only when given.
func (s *ContentService) UpdateMaterial(ctx context.Context, identity models.Identity, classroomID, materialID int64, form *validation.MaterialEditForm) (*models.Material, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	material, err := s.remote.UpdateMaterial(ctx, identity, classroomID, materialID, models.MaterialInput{
		Title:       form.Title,
		Description: form.Description,
		File:        form.File,
	})
	if err != nil {
		return nil, err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionMaterialUpdate,
		Resource:    "material",
		ResourceID:  int64Ptr(materialID),
		ClassroomID: classroomID,
	})
	return material, nil
}

// SendMessage posts a message for any classroom member.
func (s *ContentService) SendMessage(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MessageForm) (*models.Message, error) {
	message, err := s.remote.SendMessage(ctx, identity, classroomID, models.MessageInput{Content: form.Content, File: form.File})
	if err != nil {
		return nil, err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionMessageSend,
		Resource:    "message",
		ResourceID:  int64Ptr(message.ID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"attachment": form.File != nil},
	})
	return message, nil
}

// SetMeetLink stores the classroom's meet link.
func (s *ContentService) SetMeetLink(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MeetLinkForm) error {
	if err := requireTeacher(identity); err != nil {
		return err
	}
	if err := s.remote.SetMeetLink(ctx, identity, classroomID, form.MeetLink); err != nil {
		return err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionMeetLinkUpdate,
		Resource:    "classroom",
		ResourceID:  int64Ptr(classroomID),
		ClassroomID: classroomID,
	})
	return nil
}
