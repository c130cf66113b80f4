package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"hotel/config"
	"hotel/internal/domains/room/model"
)

// Room reads the configured room catalog. Rooms are not stored in the database.
type Room interface {
	Catalog() model.Catalog
	GetAll() []model.Room
	Get(number string) (model.Room, bool)
}

type repositoryImpl struct {
	catalog model.Catalog
}

func New(config *config.Config) Room {
	return &repositoryImpl{
		catalog: model.NewCatalog(config.App.Rooms),
	}
}

func (r *repositoryImpl) Catalog() model.Catalog {
	return r.catalog
}

func (r *repositoryImpl) GetAll() []model.Room {
	return r.catalog.Rooms()
}

func (r *repositoryImpl) Get(number string) (model.Room, bool) {
	if !r.catalog.Has(number) {
		return model.Room{}, false
	}

	return model.Room{Number: number, Capacity: r.catalog.Capacity(number)}, true
}
