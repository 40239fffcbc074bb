package collector

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/drupal-init/internal/models"
)

func validateName(answer string) (string, error) {
	if err := models.ValidatePackageName(answer); err != nil {
		return "", err
	}
	return answer, nil
}

func validateAuthor(answer string) (string, error) {
	if models.IsSkipAnswer(answer) || strings.TrimSpace(answer) == "" {
		return "", nil
	}

	author, err := models.ParseAuthor(answer)
	if err != nil {
		return "", err
	}
	return author.String(), nil
}

func validateStability(answer string) (string, error) {
	stability, err := models.ParseStability(strings.TrimSpace(answer))
	if err != nil {
		return "", err
	}
	return string(stability), nil
}

func validateWebDir(answer string) (string, error) {
	dir := models.NormalizeWebDir(answer)
	if dir == "" || dir == "/" {
		return "", fmt.Errorf("%w: invalid web directory %q", models.ErrInvalidInput, answer)
	}
	return dir, nil
}

func validateConstraint(answer string) (string, error) {
	constraint := strings.TrimSpace(answer)
	if constraint == "" {
		return "", fmt.Errorf("%w: a version constraint is required", models.ErrInvalidInput)
	}
	return constraint, nil
}
