package client

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
)

// ImagePathKeys are the upload response fields that may carry the stored
// image reference, in the order they are tried.
var ImagePathKeys = []string{"imagePath", "path", "url"}

// API is the part of Client the creation workflow depends on.
type API interface {
	Upload(ctx context.Context, filename string, data []byte) (map[string]any, error)
	CreateSchool(ctx context.Context, s domain.NewSchool) (*CreateResponse, error)
}

// Form holds the user's input for one "add school" submission.
type Form struct {
	Name      string
	Address   string
	City      string
	State     string
	Contact   string
	EmailID   string
	ImageName string
	Image     []byte
}

func (f *Form) Reset() {
	*f = Form{}
}

func (f *Form) school(imagePath string) domain.NewSchool {
	return domain.NewSchool{
		Name:    f.Name,
		Address: f.Address,
		City:    f.City,
		State:   f.State,
		Contact: f.Contact,
		Image:   imagePath,
		EmailID: f.EmailID,
	}.Normalize()
}

type Result struct {
	ID        int64
	ImagePath string
	Message   string
}

// Workflow uploads the image and then creates the record that references it.
// The two calls are strictly sequential and a failed second call is not
// compensated.
type Workflow struct {
	api       API
	validator *domain.Validator
	log       *zap.Logger
}

func NewWorkflow(api API, log *zap.Logger) *Workflow {
	return &Workflow{api: api, validator: domain.NewValidator(), log: log}
}

// Submit runs the workflow. On success the form is reset. Errors are one of
// *domain.ValidationError, *UploadError or *PartialCreationError.
func (w *Workflow) Submit(ctx context.Context, form *Form) (*Result, error) {
	pending := ""
	if len(form.Image) > 0 {
		pending = "pending-upload"
	}
	if err := w.validator.Validate(form.school(pending)); err != nil {
		return nil, err
	}

	uploaded, err := w.api.Upload(ctx, form.ImageName, form.Image)
	if err != nil {
		w.log.Warn("Image upload failed", zap.String("filename", form.ImageName), zap.Error(err))
		return nil, &UploadError{Detail: detail(err, "Image upload failed."), Err: err}
	}

	imagePath := ExtractImagePath(uploaded)
	if imagePath == "" {
		return nil, &UploadError{Detail: "image path not returned from server"}
	}

	resp, err := w.api.CreateSchool(ctx, form.school(imagePath))
	if err != nil {
		w.log.Warn("Image stored but school record was not created",
			zap.String("orphaned_image", imagePath),
			zap.String("name", form.Name),
			zap.Error(err))
		return nil, &PartialCreationError{
			ImagePath: imagePath,
			Detail:    detail(err, "Failed to save school."),
			Err:       err,
		}
	}

	w.log.Info("School added",
		zap.Int64("id", resp.ID),
		zap.String("image", imagePath))

	form.Reset()
	return &Result{ID: resp.ID, ImagePath: imagePath, Message: "School added successfully!"}, nil
}

// ExtractImagePath returns the first non-empty string found under
// ImagePathKeys.
func ExtractImagePath(resp map[string]any) string {
	for _, key := range ImagePathKeys {
		if s, ok := resp[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func detail(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) {
		if se.Body != "" {
			return se.Body
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Message converts a workflow error into the single line shown to the user.
func Message(err error) string {
	var verr *domain.ValidationError
	var uerr *UploadError
	var perr *PartialCreationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr), errors.As(err, &uerr), errors.As(err, &perr):
		return err.Error()
	default:
		return "Something went wrong."
	}
}
