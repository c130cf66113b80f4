package model

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

const (
	EntityName = "room"

	// DefaultCapacity applies to a room number the catalog does not know.
	DefaultCapacity = 2
)

// DefaultCapacities is the hotel's room list when APP_ROOMS is not set.
var DefaultCapacities = map[string]int{
	"101": 2,
	"102": 3,
	"103": 4,
	"201": 5,
	"202": 3,
	"203": 4,
}

type Room struct {
	Number   string
	Capacity int
}

// Catalog is the fixed, read-only set of bookable rooms.
type Catalog struct {
	capacities map[string]int
	numbers    []string
}

// NewCatalog keeps entries with a non-blank number and a positive capacity.
// An empty result falls back to DefaultCapacities.
func NewCatalog(capacities map[string]int) Catalog {
	cleaned := make(map[string]int, len(capacities))

	for number, capacity := range capacities {
		number = strings.TrimSpace(number)
		if number == "" || capacity < 1 {
			continue
		}

		cleaned[number] = capacity
	}

	if len(cleaned) == 0 {
		cleaned = maps.Clone(DefaultCapacities)
	}

	numbers := slices.Collect(maps.Keys(cleaned))
	slices.SortFunc(numbers, compareNumbers)

	return Catalog{
		capacities: cleaned,
		numbers:    numbers,
	}
}

func (c Catalog) Has(number string) bool {
	_, ok := c.capacities[number]

	return ok
}

func (c Catalog) Capacity(number string) int {
	if capacity, ok := c.capacities[number]; ok {
		return capacity
	}

	return DefaultCapacity
}

// Numbers returns the room numbers in display order.
func (c Catalog) Numbers() []string {
	return slices.Clone(c.numbers)
}

func (c Catalog) Rooms() []Room {
	rooms := make([]Room, 0, len(c.numbers))
	for _, number := range c.numbers {
		rooms = append(rooms, Room{Number: number, Capacity: c.capacities[number]})
	}

	return rooms
}

// compareNumbers orders numeric room numbers by value and everything else lexically after them.
func compareNumbers(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		return ai - bi
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
