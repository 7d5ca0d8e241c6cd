package classifier

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// ClassMetrics holds the per-label scores of an evaluation.
type ClassMetrics struct {
	Label     string  `json:"label" yaml:"label"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
	Support   int     `json:"support" yaml:"support"`
}

// Report is the held-out evaluation of a trained pipeline.
type Report struct {
	Accuracy    float64        `json:"accuracy" yaml:"accuracy"`
	Classes     []ClassMetrics `json:"classes" yaml:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg" yaml:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg" yaml:"weighted_avg"`
	Support     int            `json:"support" yaml:"support"`
}

// AccuracyPercent returns the accuracy as a percentage rounded to two decimals.
func (r Report) AccuracyPercent() float64 {
	return math.Round(r.Accuracy*100*100) / 100
}

// Evaluate compares predictions against ground truth. Labels that appear in either slice are reported.
func Evaluate(truth, predicted []string) (Report, error) {
	if len(truth) != len(predicted) {
		return Report{}, fmt.Errorf("evaluate: %d labels for %d predictions", len(truth), len(predicted))
	}

	report := Report{Support: len(truth)}
	if len(truth) == 0 {
		return report, nil
	}

	labels := uniqueSorted(append(append([]string(nil), truth...), predicted...))
	truePos := make(map[string]int)
	predCount := make(map[string]int)
	support := make(map[string]int)

	correct := 0
	for i := range truth {
		support[truth[i]]++
		predCount[predicted[i]]++
		if truth[i] == predicted[i] {
			correct++
			truePos[truth[i]]++
		}
	}
	report.Accuracy = float64(correct) / float64(len(truth))

	for _, label := range labels {
		m := ClassMetrics{Label: label, Support: support[label]}
		if predCount[label] > 0 {
			m.Precision = float64(truePos[label]) / float64(predCount[label])
		}
		if support[label] > 0 {
			m.Recall = float64(truePos[label]) / float64(support[label])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes = append(report.Classes, m)

		report.MacroAvg.Precision += m.Precision
		report.MacroAvg.Recall += m.Recall
		report.MacroAvg.F1 += m.F1

		w := float64(m.Support)
		report.WeightedAvg.Precision += w * m.Precision
		report.WeightedAvg.Recall += w * m.Recall
		report.WeightedAvg.F1 += w * m.F1
	}

	k := float64(len(labels))
	total := float64(len(truth))
	report.MacroAvg = ClassMetrics{
		Label:     "macro avg",
		Precision: report.MacroAvg.Precision / k,
		Recall:    report.MacroAvg.Recall / k,
		F1:        report.MacroAvg.F1 / k,
		Support:   len(truth),
	}
	report.WeightedAvg = ClassMetrics{
		Label:     "weighted avg",
		Precision: report.WeightedAvg.Precision / total,
		Recall:    report.WeightedAvg.Recall / total,
		F1:        report.WeightedAvg.F1 / total,
		Support:   len(truth),
	}

	return report, nil
}

// WriteTable renders the report as an aligned text table.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tprecision\trecall\tf1-score\tsupport\t")
	for _, m := range r.Classes {
		writeRow(tw, m)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", r.Accuracy, r.Support)
	writeRow(tw, r.MacroAvg)
	writeRow(tw, r.WeightedAvg)
	return tw.Flush()
}

// String returns the table produced by WriteTable.
func (r Report) String() string {
	var b strings.Builder
	_ = r.WriteTable(&b)
	return b.String()
}

func writeRow(w io.Writer, m ClassMetrics) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
}
