package engine

// combine reconciles the head and tail partial sequences into the final
// assignment.
//
// When both subranges produced a sequence, the printed-number gap between
// the end of the head and the start of the tail must agree with the
// physical page gap to within 2; otherwise the tail is treated as
// unreliable and the head stands alone. With only one side present that
// side is returned as-is, and the document's first/last printed page is
// estimated for diagnostics only.
func (e *Engine) combine(headSeq, tailSeq Assignment, pageCount int) Assignment {
	switch {
	case len(headSeq) > 0 && len(tailSeq) > 0:
		firstEnd := headSeq.maxValue()
		lastStart := tailSeq.minValue()
		pdfGap := tailSeq.minIndex() - headSeq.maxIndex()
		actualGap := lastStart - firstEnd

		if abs(actualGap-pdfGap) <= 2 {
			merged := make(Assignment, len(headSeq)+len(tailSeq))
			for i, v := range headSeq {
				merged[i] = v
			}
			for i, v := range tailSeq {
				merged[i] = v
			}
			e.log.Debug("head and tail sequences reconciled",
				"pdf_gap", pdfGap, "actual_gap", actualGap)
			return merged
		}

		e.log.Debug("tail sequence rejected by gap check",
			"pdf_gap", pdfGap, "actual_gap", actualGap)
		return headSeq

	case len(headSeq) > 0:
		// Offset the observed minimum back to physical page 0 to estimate
		// the document's true first and last printed pages. Diagnostic
		// only, never substituted into the result.
		estFirst := headSeq.minValue() - headSeq.minIndex()
		e.log.Debug("head-only sequence",
			"estimated_first", estFirst,
			"estimated_last", estFirst+pageCount-1)
		return headSeq

	case len(tailSeq) > 0:
		estLast := tailSeq.maxValue() + (pageCount - 1 - tailSeq.maxIndex())
		e.log.Debug("tail-only sequence",
			"estimated_first", estLast-(pageCount-1),
			"estimated_last", estLast)
		return tailSeq

	default:
		return nil
	}
}
