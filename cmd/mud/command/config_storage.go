package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/solace/internal/actions"
	"github.com/pixil98/solace/internal/game"
	"github.com/pixil98/solace/internal/storage"
)

type StorageConfig struct {
	Characters AssetConfig[*game.Character]     `json:"characters"`
	Actions    AssetConfig[*actions.Descriptor] `json:"actions"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Characters.Validate("characters"))
	el.Add(c.Actions.Validate("actions"))
	return el.Err()
}

// BuildRegistry loads every action asset and registers it.
func (c *StorageConfig) BuildRegistry() (*actions.Registry, error) {
	store, err := c.Actions.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating action store: %w", err)
	}

	reg, err := actions.NewRegistry(store)
	if err != nil {
		return nil, fmt.Errorf("registering actions: %w", err)
	}
	return reg, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
