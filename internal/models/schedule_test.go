package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOnWeekdays_NormalizesInput(t *testing.T) {
	t.Parallel()

	s := OnWeekdays(5, 1, 3, 1, 9, -1)
	if !reflect.DeepEqual(s.Weekdays, []int{1, 3, 5}) {
		t.Errorf("Weekdays = %v, want [1 3 5]", s.Weekdays)
	}
	if !s.HasWeekday(3) || s.HasWeekday(2) {
		t.Error("HasWeekday membership wrong")
	}
}

func TestSchedule_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Schedule
		wantErr bool
	}{
		{"daily", Daily(), false},
		{"weekdays", OnWeekdays(1, 3, 5), false},
		{"empty weekdays", OnWeekdays(), false},
		{"times per week", TimesPerWeek(3), false},
		{"every n days", EveryNDays(2), false},
		{"unknown kind", Schedule{Kind: "fortnightly"}, true},
		{"weekday out of range", Schedule{Kind: ScheduleWeekdays, Weekdays: []int{7}}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSchedule_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := OnWeekdays(1, 3, 5)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Schedule
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed schedule: %+v vs %+v", in, out)
	}
}

func TestIndexCompletions_FiltersByDate(t *testing.T) {
	t.Parallel()

	a := Task{}
	logs := []CompletionLog{
		{TaskID: a.ID, Date: "2025-01-14", CountCompleted: 2},
		{TaskID: a.ID, Date: "2025-01-15", CountCompleted: 1},
	}
	idx := IndexCompletions(logs, "2025-01-15")
	if idx[a.ID] != 1 {
		t.Errorf("count = %d, want 1", idx[a.ID])
	}
}
