package database

import (
	"fmt"
	"log"

	"estufas/pkg/block"
	blockrepo "estufas/pkg/block/repository"
	"estufas/pkg/crop"
	croprepo "estufas/pkg/crop/repository"
)

// SeedBlocks fills an empty blocks table from file, or from the built-in
// layout when file is "". A populated table is left alone: the layout is
// fixed once the site is set up.
func SeedBlocks(repo blockrepo.BlockRepository, file string) error {
	n, err := repo.Count()
	if err != nil {
		return fmt.Errorf("count blocks: %w", err)
	}
	if n > 0 {
		return nil
	}
	blocks := block.DefaultLayout()
	if file != "" {
		if blocks, err = block.LoadLayout(file); err != nil {
			return fmt.Errorf("load layout: %w", err)
		}
	}
	// validate before writing anything
	reg, err := block.NewRegistry(blocks)
	if err != nil {
		return err
	}
	log.Printf("[db] seeding %d blocks", reg.Len())
	return repo.BulkInsert(reg.Blocks())
}

// SeedCrops fills an empty crop_profiles table the same way.
func SeedCrops(repo croprepo.CropRepository, file string) error {
	n, err := repo.Count()
	if err != nil {
		return fmt.Errorf("count crops: %w", err)
	}
	if n > 0 {
		return nil
	}
	profiles := crop.DefaultCatalog()
	if file != "" {
		if profiles, err = crop.LoadCatalog(file); err != nil {
			return fmt.Errorf("load crop catalog: %w", err)
		}
	}
	for i := range profiles {
		if err := crop.Normalize(&profiles[i]); err != nil {
			return err
		}
	}
	log.Printf("[db] seeding %d crop profiles", len(profiles))
	return repo.BulkInsert(profiles)
}

// LoadRegistry builds the Block Registry from the blocks table.
func LoadRegistry(repo blockrepo.BlockRepository) (*block.Registry, error) {
	blocks, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("blocks table is empty")
	}
	return block.NewRegistry(blocks)
}

