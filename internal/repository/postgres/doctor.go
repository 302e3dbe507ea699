package postgres

import (
	"context"
	"fmt"

	"github.com/medbook/booking-api/internal/model"
)

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, specialty
		FROM doctors
		ORDER BY name
	`
	doctors := make([]*model.Doctor, 0)
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
