package core

import (
	"reflect"
	"testing"

	"github.com/brunojasgv/spacex/domain"
	"github.com/google/uuid"
)

func TestLogOptions(t *testing.T) {
	t.Run("LogWithContext should set the context map", func(t *testing.T) {
		log := &domain.Log{}
		want := map[string]any{"resource": "launches"}

		if err := LogWithContext(want)(log); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(want, log.Context) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, log.Context)
		}
	})

	t.Run("LogWithFetchID should set the fetch ID", func(t *testing.T) {
		log := &domain.Log{}
		id := uuid.MustParse("01937d13-9632-72aa-83b9-c10ea1abbdd6")

		if err := LogWithFetchID(id)(log); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if log.FetchID == nil || *log.FetchID != id {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", id, log.FetchID)
		}
	})

	t.Run("LogWithFetchID should ignore the nil UUID", func(t *testing.T) {
		log := &domain.Log{}

		if err := LogWithFetchID(uuid.Nil)(log); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if log.FetchID != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", log.FetchID)
		}
	})
}
