package pagemodule

// Save-time normalization. The admin client edits module payloads as loose
// JSON; before a document is persisted every module passes through
// Normalize, which applies the per-type invariants and silent data
// migrations the editors rely on. Unknown types pass through untouched.

// NormalizeList normalizes every module and renumbers orders to be dense.
func NormalizeList(l List) List {
	out := make(List, len(l))
	for i, m := range l {
		out[i] = Normalize(m)
	}
	return out.renumber()
}

// Normalize applies the type-specific save rules to one module.
func Normalize(m Module) Module {
	d, err := Decode(m)
	if err != nil {
		// Malformed payloads are kept as-is; the generic editor is the
		// only producer that can fix them.
		return m
	}
	switch v := d.(type) {
	case TimelineData:
		d = normalizeTimeline(v)
	case TableData:
		d = normalizeTable(v)
	case QuizQuestionsData:
		d = normalizeQuizQuestions(v)
	default:
		return m
	}
	data, err := EncodeData(d)
	if err != nil {
		return m
	}
	m.Data = data
	return m
}

// normalizeTimeline migrates the legacy `items` array key to `events`.
// Either key is read; `events` is always written and `items` dropped.
func normalizeTimeline(d TimelineData) TimelineData {
	if len(d.Events) == 0 && len(d.Items) > 0 {
		d.Events = d.Items
	}
	d.Items = nil
	if d.Events == nil {
		d.Events = []TimelineEvent{}
	}
	return d
}

// normalizeTable restores the lockstep invariant: every row has exactly
// len(Headers) cells. Headers enabled with no header row yet get sized to
// the first row's column count.
func normalizeTable(d TableData) TableData {
	if d.HasHeaders && len(d.Headers) == 0 && len(d.Rows) > 0 {
		d.Headers = make([]string, len(d.Rows[0]))
	}
	if len(d.Headers) > 0 {
		for i, row := range d.Rows {
			d.Rows[i] = fitRow(row, len(d.Headers))
		}
	}
	if d.Headers == nil {
		d.Headers = []string{}
	}
	if d.Rows == nil {
		d.Rows = [][]string{}
	}
	return d
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// normalizeQuizQuestions reconciles each question with its answer kind:
// text questions carry only correct_answer, choice questions only options,
// and single-choice questions keep at most one correct option.
func normalizeQuizQuestions(d QuizQuestionsData) QuizQuestionsData {
	for i, q := range d.Questions {
		if q.Type == "" {
			q.Type = QuestionSingle
		}
		switch q.Type {
		case QuestionText:
			q.Options = nil
		case QuestionSingle:
			q.CorrectAnswer = ""
			seen := false
			for j, opt := range q.Options {
				if opt.Correct {
					if seen {
						q.Options[j].Correct = false
					}
					seen = true
				}
			}
		default:
			q.CorrectAnswer = ""
		}
		d.Questions[i] = q
	}
	return d
}

// --- Editor operations ---
//
// The stateful edge cases of the table and quiz editors live here so the
// handlers stay thin and the rules are testable.

// AddColumn appends a column, extending headers and every row in lockstep.
func (d TableData) AddColumn() TableData {
	d.Headers = append(append([]string{}, d.Headers...), "")
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		rows[i] = append(append([]string{}, row...), "")
	}
	d.Rows = rows
	return d
}

// RemoveColumn drops column idx from headers and every row.
func (d TableData) RemoveColumn(idx int) TableData {
	if idx < 0 || idx >= len(d.Headers) {
		return d
	}
	headers := append([]string{}, d.Headers[:idx]...)
	d.Headers = append(headers, d.Headers[idx+1:]...)
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			r := append([]string{}, row[:idx]...)
			rows[i] = append(r, row[idx+1:]...)
		} else {
			rows[i] = append([]string{}, row...)
		}
	}
	d.Rows = rows
	return d
}

// SetHasHeaders toggles the header row. The first time headers are enabled
// they are sized to the first row's column count.
func (d TableData) SetHasHeaders(on bool) TableData {
	d.HasHeaders = on
	if on && len(d.Headers) == 0 && len(d.Rows) > 0 {
		d.Headers = make([]string, len(d.Rows[0]))
	}
	return d
}

// SetQuestionType switches a question's answer kind, discarding the
// previous representation.
func (q QuizQuestion) SetQuestionType(kind string) QuizQuestion {
	if q.Type == kind {
		return q
	}
	q.Type = kind
	if kind == QuestionText {
		q.Options = nil
	} else {
		q.CorrectAnswer = ""
	}
	return q
}

// ToggleCorrect flips the correct flag on one option. On single-choice
// questions marking an option correct clears every other flag.
func (q QuizQuestion) ToggleCorrect(optionID string) QuizQuestion {
	opts := make([]QuizOption, len(q.Options))
	copy(opts, q.Options)
	for i, opt := range opts {
		if opt.ID != optionID {
			continue
		}
		opts[i].Correct = !opt.Correct
		if opts[i].Correct && q.Type == QuestionSingle {
			for j := range opts {
				if j != i {
					opts[j].Correct = false
				}
			}
		}
	}
	q.Options = opts
	return q
}
