package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal/camp"
	campDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/camp"
)

type CampRepository struct {
	db *gorm.DB
}

func NewCampRepository(db *gorm.DB) camp.RepositoryAPI {
	return &CampRepository{db: db}
}

func (r *CampRepository) GetAll(ctx context.Context) ([]*campDatamodel.Camp, error) {
	var camps []*campDatamodel.Camp
	err := r.db.WithContext(ctx).Order("name ASC").Find(&camps).Error
	return camps, err
}

func (r *CampRepository) GetByID(ctx context.Context, id int64) (*campDatamodel.Camp, error) {
	var c campDatamodel.Camp
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampRepository) NamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	var camps []*campDatamodel.Camp
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&camps).Error; err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(camps))
	for _, c := range camps {
		names[c.ID] = c.Name
	}
	return names, nil
}
