package match

import (
	"fmt"

	"github.com/corey/mdicon/internal/domain/detect"
)

// CheckDuplicateUsage looks for prior assignments of iconName within the
// session whose context is dissimilar to the current occurrence. Existing
// usages are checked in stored (append) order and the first one whose
// similarity falls below the threshold produces a warning; the warning is
// critical when similarity drops below the critical bound. No prior usage,
// or all usages at/above threshold, returns nil.
func (m *Matcher) CheckDuplicateUsage(sessionID, iconName string, occ detect.Occurrence) (*Warning, error) {
	usages, err := m.store.SessionUsages(sessionID, iconName)
	if err != nil {
		return nil, fmt.Errorf("session usages: %w", err)
	}
	if len(usages) == 0 {
		return nil, nil
	}

	currentContext := detect.ContextSummary(occ)
	normalizedCurrent := detect.NormalizeForComparison(currentContext)

	for _, usage := range usages {
		similarity := Similarity(normalizedCurrent, detect.NormalizeForComparison(usage.ContextText))
		if similarity < m.cfg.SimilarityThreshold {
			return &Warning{
				IconName:        iconName,
				CurrentContext:  currentContext,
				CurrentLine:     occ.Line,
				ExistingContext: usage.ContextText,
				ExistingLine:    usage.LineNumber,
				Similarity:      similarity,
				Critical:        similarity < m.cfg.CriticalBelow,
			}, nil
		}
	}
	return nil, nil
}
