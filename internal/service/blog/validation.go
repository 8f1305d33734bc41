package blog

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/config"
	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
	blogSvc "folio/internal/domain/services/blog"
)

// validateSaveRequest checks the editor payload and returns the parsed
// author list. Nothing has been written when it fails.
func validateSaveRequest(req *blogSvc.SaveDocumentRequest) ([]string, error) {
	authors := models.ParseAuthors(req.Authors)

	err := validation.ValidateStruct(req,
		validation.Field(&req.ID,
			validation.Length(0, config.MaxIDLength),
			validation.Match(validSlugExpr).Error("must contain only lowercase letters, digits and hyphens"),
		),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&req.Authors,
			validation.Required,
			validation.By(func(interface{}) error {
				return validateAuthors(authors)
			}),
		),
		validation.Field(&req.Date, validation.RuneLength(0, config.MaxDateLength)),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: strings.TrimSuffix(err.Error(), ".")}
	}

	return authors, nil
}

func validateAuthors(authors []string) error {
	if len(authors) == 0 {
		return errors.New("at least one author is required")
	}
	if len(authors) > config.MaxAuthors {
		return fmt.Errorf("at most %d authors are allowed", config.MaxAuthors)
	}
	for _, name := range authors {
		if len([]rune(name)) > config.MaxAuthorNameLength {
			return fmt.Errorf("author name %q exceeds %d characters", name, config.MaxAuthorNameLength)
		}
	}
	return nil
}

// validateID rejects ids that could not have been generated
func validateID(id string) error {
	if !IsValidID(id) {
		return &domain.ValidationError{Field: "id", Message: fmt.Sprintf("invalid document id %q", id)}
	}
	return nil
}
