package repositoryImp

import (
	"estufas/entities"
	"estufas/pkg/crop/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) List() ([]entities.CropProfile, error) {
	var out []entities.CropProfile
	if err := r.db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) FindByName(name string) (*entities.CropProfile, error) {
	var p entities.CropProfile
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *cropRepo) Upsert(p *entities.CropProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"row_spacing_m", "plant_spacing_m", "rows_per_bed", "cycle_weeks", "plants_per_ha", "updated_at"}),
	}).Create(p).Error
}

func (r *cropRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.CropProfile{}).Count(&n).Error
	return n, err
}

func (r *cropRepo) BulkInsert(ps []entities.CropProfile) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.Create(&ps).Error
}
