package repository

import "estufas/entities"

type BlockRepository interface {
	List() ([]entities.Block, error)
	Count() (int64, error)
	BulkInsert([]entities.Block) error
}
