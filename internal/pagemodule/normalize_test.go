package pagemodule

import "testing"

func normalizedData(t *testing.T, moduleType string, data map[string]any) TypedData {
	t.Helper()
	m := Normalize(Module{Type: moduleType, Visible: true, Data: data})
	d, err := Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNormalizeTimelineMigratesItems(t *testing.T) {
	d := normalizedData(t, TypeTimeline, map[string]any{
		"items": []any{map[string]any{"year": 2005.0, "title": "Премьера"}},
	}).(TimelineData)

	if len(d.Events) != 1 || d.Events[0].Year != 2005 {
		t.Fatalf("events not migrated: %+v", d)
	}
	if d.Items != nil {
		t.Error("legacy items key survived normalization")
	}
}

func TestNormalizeTimelineEventsWin(t *testing.T) {
	d := normalizedData(t, TypeTimeline, map[string]any{
		"events": []any{map[string]any{"title": "A"}},
		"items":  []any{map[string]any{"title": "B"}},
	}).(TimelineData)

	if len(d.Events) != 1 || d.Events[0].Title != "A" {
		t.Errorf("events should win over legacy items: %+v", d.Events)
	}
}

func TestNormalizeTableLockstep(t *testing.T) {
	d := normalizedData(t, TypeTable, map[string]any{
		"headers":    []any{"Год", "Событие", "Место"},
		"hasHeaders": true,
		"rows": []any{
			[]any{"1999"},
			[]any{"2003", "Финал", "Москва", "лишняя"},
		},
	}).(TableData)

	for i, row := range d.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if d.Rows[1][2] != "Москва" {
		t.Errorf("kept cells should survive truncation: %v", d.Rows[1])
	}
}

func TestNormalizeTableSizesHeadersFromFirstRow(t *testing.T) {
	d := normalizedData(t, TypeTable, map[string]any{
		"hasHeaders": true,
		"rows":       []any{[]any{"a", "b"}},
	}).(TableData)

	if len(d.Headers) != 2 {
		t.Errorf("headers = %v, want two empty cells", d.Headers)
	}
}

func TestNormalizeQuizSingleKeepsFirstCorrect(t *testing.T) {
	d := normalizedData(t, TypeQuizQuestions, map[string]any{
		"questions": []any{map[string]any{
			"id":   1.0,
			"type": "single",
			"options": []any{
				map[string]any{"id": "a", "text": "Да", "correct": true},
				map[string]any{"id": "b", "text": "Нет", "correct": true},
			},
			"correct_answer": "мусор",
		}},
	}).(QuizQuestionsData)

	q := d.Questions[0]
	if q.CorrectAnswer != "" {
		t.Error("single question kept correct_answer")
	}
	if !q.Options[0].Correct || q.Options[1].Correct {
		t.Errorf("exactly the first correct option should survive: %+v", q.Options)
	}
}

func TestNormalizeQuizTextDropsOptions(t *testing.T) {
	d := normalizedData(t, TypeQuizQuestions, map[string]any{
		"questions": []any{map[string]any{
			"id":             1.0,
			"type":           "text",
			"options":        []any{map[string]any{"id": "a", "text": "x"}},
			"correct_answer": "Ургант",
		}},
	}).(QuizQuestionsData)

	q := d.Questions[0]
	if q.Options != nil {
		t.Error("text question kept options")
	}
	if q.CorrectAnswer != "Ургант" {
		t.Errorf("correct_answer = %q", q.CorrectAnswer)
	}
}

func TestNormalizeListRenumbers(t *testing.T) {
	l := buildList(TypeTextBlock, TypeQuote, TypeTable)
	l[0].Order = 7
	l[2].Order = 0
	denseOrders(t, NormalizeList(l))
}

func TestNormalizeUnknownTypeUntouched(t *testing.T) {
	raw := map[string]any{"anything": "goes"}
	m := Normalize(Module{Type: "mystery", Data: raw})
	if m.Data["anything"] != "goes" {
		t.Error("unknown module data changed")
	}
}

func TestTableAddRemoveColumn(t *testing.T) {
	d := TableData{
		Headers: []string{"Год", "Событие"},
		Rows:    [][]string{{"1999", "Дебют"}},
	}

	d = d.AddColumn()
	if len(d.Headers) != 3 || len(d.Rows[0]) != 3 {
		t.Fatalf("AddColumn broke lockstep: %v / %v", d.Headers, d.Rows[0])
	}

	d = d.RemoveColumn(0)
	if len(d.Headers) != 2 || d.Headers[0] != "Событие" {
		t.Errorf("headers = %v", d.Headers)
	}
	if len(d.Rows[0]) != 2 || d.Rows[0][0] != "Дебют" {
		t.Errorf("rows = %v", d.Rows)
	}

	if got := d.RemoveColumn(9); len(got.Headers) != 2 {
		t.Error("out-of-range RemoveColumn should be a no-op")
	}
}

func TestSetQuestionTypeIsLossy(t *testing.T) {
	q := QuizQuestion{
		Type:    QuestionSingle,
		Options: []QuizOption{{ID: "a", Text: "Да", Correct: true}},
	}

	q = q.SetQuestionType(QuestionText)
	if q.Options != nil {
		t.Error("options survived switch to text")
	}

	q.CorrectAnswer = "ответ"
	q = q.SetQuestionType(QuestionMultiple)
	if q.CorrectAnswer != "" {
		t.Error("correct_answer survived switch to multiple")
	}
}

func TestToggleCorrectSingleSelect(t *testing.T) {
	q := QuizQuestion{
		Type: QuestionSingle,
		Options: []QuizOption{
			{ID: "a", Correct: true},
			{ID: "b"},
			{ID: "c"},
		},
	}

	q = q.ToggleCorrect("b")
	if q.Options[0].Correct || !q.Options[1].Correct || q.Options[2].Correct {
		t.Errorf("single-select exclusivity violated: %+v", q.Options)
	}

	q = q.ToggleCorrect("b")
	for _, opt := range q.Options {
		if opt.Correct {
			t.Errorf("toggle off left %s correct", opt.ID)
		}
	}
}

func TestToggleCorrectMultiple(t *testing.T) {
	q := QuizQuestion{
		Type:    QuestionMultiple,
		Options: []QuizOption{{ID: "a", Correct: true}, {ID: "b"}},
	}
	q = q.ToggleCorrect("b")
	if !q.Options[0].Correct || !q.Options[1].Correct {
		t.Errorf("multiple-choice should allow several correct: %+v", q.Options)
	}
}
