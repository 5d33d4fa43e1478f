package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawStaff struct {
	Name     string `validate:"required"`
	Category string `validate:"omitempty,oneof=counselor front_desk"`
	Start    string `validate:"required,datetime=15:04"`
	End      string `validate:"required,datetime=15:04"`
}

type RawRoom struct {
	Category string `validate:"required"`
	Open     string `validate:"required,datetime=15:04"`
	Close    string `validate:"required,datetime=15:04"`
	Capacity int    `validate:"required,min=1"`
}

type RawInput struct {
	Day     string     `validate:"required,datetime=2006-01-02"`
	Rooms   []string   `validate:"required,min=1,dive,required"`
	Catalog []RawRoom  `validate:"dive"`
	Staff   []RawStaff `validate:"dive"`
}

type Input struct {
	Day     time.Time
	Catalog Catalog
	Rooms   []*Room
	Staff   []*Staff
}

// Room returns the room of the given category, if it is part of the input
func (input Input) Room(category RoomCategory) (*Room, bool) {
	return lo.Find(input.Rooms, func(room *Room) bool { return room.Category == category })
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// InputFromFile reads a JSON or YAML (by extension) roster file
func InputFromFile(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputMap map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &inputMap)
	default:
		err = json.Unmarshal(bytes, &inputMap)
	}
	if err != nil {
		return Input{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	return InputFromMap(inputMap)
}

func InputFromMap(inputMap map[string]any) (Input, error) {
	var rawInput RawInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       dayHook,
		WeaklyTypedInput: true,
		Result:           &rawInput,
	})
	if err != nil {
		return Input{}, err
	}
	if err := decoder.Decode(inputMap); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput)
}

// YAML resolves unquoted dates into timestamps; bring them back to their textual form
func dayHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if day, ok := data.(time.Time); ok && to.Kind() == reflect.String {
		return day.Format("2006-01-02"), nil
	}
	return data, nil
}

func ProcessRawInput(rawInput RawInput) (Input, error) {
	if err := validate.Struct(rawInput); err != nil {
		return Input{}, fmt.Errorf("invalid input: %w", err)
	}

	day, err := timeline.ParseDay(rawInput.Day)
	if err != nil {
		return Input{}, err
	}

	//** Manage catalog
	overrides := lo.SliceToMap(rawInput.Catalog, func(room RawRoom) (RoomCategory, RoomSpec) {
		return RoomCategory(room.Category), RoomSpec{Open: room.Open, Close: room.Close, Capacity: room.Capacity}
	})
	catalog := DefaultCatalog().With(overrides)

	//** Manage rooms
	if duplicates := lo.FindDuplicates(rawInput.Rooms); len(duplicates) > 0 {
		return Input{}, fmt.Errorf("room %q is listed more than once", duplicates[0])
	}
	rooms := make([]*Room, 0, len(rawInput.Rooms))
	for _, category := range rawInput.Rooms {
		room, err := catalog.NewRoom(RoomCategory(category), day)
		if err != nil {
			return Input{}, err
		}
		rooms = append(rooms, room)
	}

	//** Manage staff
	if duplicates := lo.FindDuplicatesBy(rawInput.Staff, func(staff RawStaff) string { return staff.Name }); len(duplicates) > 0 {
		return Input{}, fmt.Errorf("%w: %v", ErrDuplicateStaff, duplicates[0].Name)
	}
	staff := make([]*Staff, 0, len(rawInput.Staff))
	for _, rawStaff := range rawInput.Staff {
		start, err := timeline.At(day, rawStaff.Start)
		if err != nil {
			return Input{}, err
		}
		end, err := timeline.At(day, rawStaff.End)
		if err != nil {
			return Input{}, err
		}

		category := StaffCategory(rawStaff.Category)
		if category == "" {
			category = Counselor
		}
		member, err := NewStaff(rawStaff.Name, category, start, end)
		if err != nil {
			return Input{}, err
		}
		staff = append(staff, member)
	}

	return Input{Day: day, Catalog: catalog, Rooms: rooms, Staff: staff}, nil
}
