package repository_test

import (
	"testing"

	"hotel/config"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/repository"

	"github.com/stretchr/testify/assert"
)

func TestRoomRepository(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Rooms = map[string]int{"12": 2, "9": 1}

	repo := repository.New(cfg)

	assert.Equal(t, []model.Room{{Number: "9", Capacity: 1}, {Number: "12", Capacity: 2}}, repo.GetAll())
	assert.True(t, repo.Catalog().Has("12"))

	room, ok := repo.Get("9")
	assert.True(t, ok)
	assert.Equal(t, model.Room{Number: "9", Capacity: 1}, room)

	_, ok = repo.Get("101")
	assert.False(t, ok)
}

func TestRoomRepository_DefaultCatalog(t *testing.T) {
	repo := repository.New(&config.Config{})

	assert.Len(t, repo.GetAll(), len(model.DefaultCapacities))
}
