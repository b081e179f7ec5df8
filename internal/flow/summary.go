package flow

import "fmt"

// Tally counts answer records in one bucket.
type Tally struct {
	Total   int
	Correct int
}

// Accuracy returns Correct/Total, or 0 for an empty tally.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

func (t Tally) String() string {
	return fmt.Sprintf("%d/%d", t.Correct, t.Total)
}

// Summary aggregates the answer log for the result screen.
type Summary struct {
	Practice Tally
	Main     Tally

	// Total.Total counts every record, including ones in neither section.
	// Total.Correct is Practice.Correct + Main.Correct.
	Total Tally
}

func (s Summary) String() string {
	return fmt.Sprintf("practice %s, main %s, total %s", s.Practice, s.Main, s.Total)
}

// BuildSummary aggregates records. Revisited items count once per record.
func BuildSummary(records []AnswerRecord) Summary {
	var s Summary
	for _, r := range records {
		var t *Tally
		switch r.Section {
		case SectionPractice:
			t = &s.Practice
		case SectionMain:
			t = &s.Main
		}
		if t != nil {
			t.Total++
			if r.Verdict == VerdictCorrect {
				t.Correct++
			}
		}
	}
	s.Total = Tally{
		Total:   len(records),
		Correct: s.Practice.Correct + s.Main.Correct,
	}
	return s
}

// ResultSummary aggregates the flow's answer log.
func (f *Flow) ResultSummary() Summary {
	return BuildSummary(f.answers)
}
