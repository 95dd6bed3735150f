package repository

import "estufas/entities"

type CropRepository interface {
	List() ([]entities.CropProfile, error)
	FindByName(name string) (*entities.CropProfile, error)
	Upsert(p *entities.CropProfile) error
	Count() (int64, error)
	BulkInsert([]entities.CropProfile) error
}
