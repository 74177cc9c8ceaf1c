package hotel

import (
	"reflect"
	"testing"
)

func TestDistinctRoomTypes(t *testing.T) {
	tests := []struct {
		name  string
		rooms []Room
		want  []string
	}{
		{
			"preserves first-seen order",
			[]Room{{Type: "Single"}, {Type: "Double"}, {Type: "Single"}, {Type: "Suite"}},
			[]string{"Single", "Double", "Suite"},
		},
		{
			"no duplicates",
			[]Room{{Type: "Suite"}, {Type: "Double"}},
			[]string{"Suite", "Double"},
		},
		{
			"empty inventory",
			nil,
			[]string{},
		},
		{
			"all same type",
			[]Room{{Type: "Single"}, {Type: "Single"}, {Type: "Single"}},
			[]string{"Single"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistinctRoomTypes(tt.rooms)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DistinctRoomTypes() = %v, want %v", got, tt.want)
			}
		})
	}
}
