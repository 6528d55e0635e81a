package rmapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// entityHeader holds the fields every entity must carry.
type entityHeader struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type rawPage struct {
	Info    *Info              `json:"info"`
	Results *[]json.RawMessage `json:"results"`
}

// Decode decodes a single entity of type T. The id must be present and a
// positive integer and the name must be present; every other documented
// field falls back to its zero value when absent. Unknown fields are ignored.
func Decode[T Entity](data []byte) (*T, error) {
	kind := KindOf[T]()

	var header entityHeader

	err := json.Unmarshal(data, &header)
	if err != nil {
		return nil, newDecodeError(kind, err)
	}

	if header.ID == nil {
		return nil, &DecodeError{Kind: kind, Field: "id", Err: ErrMissingField}
	}

	if *header.ID <= 0 {
		return nil, &DecodeError{Kind: kind, Field: "id", Err: fmt.Errorf("%w: %d", ErrInvalidID, *header.ID)}
	}

	if header.Name == nil {
		return nil, &DecodeError{Kind: kind, Field: "name", Err: ErrMissingField}
	}

	var entity T

	err = json.Unmarshal(data, &entity)
	if err != nil {
		return nil, newDecodeError(kind, err)
	}

	return &entity, nil
}

// DecodeCharacter decodes a character document.
func DecodeCharacter(data []byte) (*Character, error) {
	return Decode[Character](data)
}

// DecodeEpisode decodes an episode document.
func DecodeEpisode(data []byte) (*Episode, error) {
	return Decode[Episode](data)
}

// DecodeLocation decodes a location document.
func DecodeLocation(data []byte) (*Location, error) {
	return Decode[Location](data)
}

// DecodePage decodes a listing envelope. Both info and results are
// required; each result is decoded with the same rules as Decode.
func DecodePage[T Entity](data []byte) (*Page[T], error) {
	kind := KindOf[T]()

	var raw rawPage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, newDecodeError(kind, err)
	}

	if raw.Info == nil {
		return nil, &DecodeError{Kind: kind, Field: "info", Err: ErrMissingField}
	}

	if raw.Results == nil {
		return nil, &DecodeError{Kind: kind, Field: "results", Err: ErrMissingField}
	}

	results, err := decodeAll[T](*raw.Results)
	if err != nil {
		return nil, err
	}

	return &Page[T]{Info: *raw.Info, Results: results}, nil
}

// DecodeList decodes the multi-id response, which is a JSON array of
// entities, or a single object when only one id was requested.
func DecodeList[T Entity](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		entity, err := Decode[T](trimmed)
		if err != nil {
			return nil, err
		}

		return []T{*entity}, nil
	}

	var items []json.RawMessage

	err := json.Unmarshal(trimmed, &items)
	if err != nil {
		return nil, newDecodeError(KindOf[T](), err)
	}

	return decodeAll[T](items)
}

// Encode serializes an entity back to its wire representation.
func Encode[T Entity](entity T) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", entity.EntityKind(), err)
	}

	return data, nil
}

func decodeAll[T Entity](items []json.RawMessage) ([]T, error) {
	results := make([]T, 0, len(items))

	for index, item := range items {
		entity, err := Decode[T](item)
		if err != nil {
			decodeErr := &DecodeError{}
			if errors.As(err, &decodeErr) {
				decodeErr.Field = resultField(index, decodeErr.Field)
			}

			return nil, err
		}

		results = append(results, *entity)
	}

	return results, nil
}

func resultField(index int, field string) string {
	if field == "" {
		return fmt.Sprintf("results[%d]", index)
	}

	return fmt.Sprintf("results[%d].%s", index, field)
}

func newDecodeError(kind Kind, err error) *DecodeError {
	typeErr := &json.UnmarshalTypeError{}
	if errors.As(err, &typeErr) {
		return &DecodeError{Kind: kind, Field: typeErr.Field, Err: err}
	}

	return &DecodeError{Kind: kind, Err: err}
}
