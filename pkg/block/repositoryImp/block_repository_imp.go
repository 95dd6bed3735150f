package repositoryImp

import (
	"estufas/entities"
	"estufas/pkg/block/repository"
	"gorm.io/gorm"
)

type blockRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BlockRepository { return &blockRepo{db} }

func (r *blockRepo) List() ([]entities.Block, error) {
	var out []entities.Block
	if err := r.db.Order("block_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *blockRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Block{}).Count(&n).Error
	return n, err
}

func (r *blockRepo) BulkInsert(bs []entities.Block) error {
	if len(bs) == 0 {
		return nil
	}
	return r.db.Create(&bs).Error
}
