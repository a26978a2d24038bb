package diag

// Reporter — минимальный контракт получения диагностик от фаз.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportErr routes err to r: *Error keeps its span, anything else
// is attached to path with the fallback code.
func ReportErr(r Reporter, err error, path string, fallback Code) {
	if r == nil || err == nil {
		return
	}
	if de, ok := AsError(err); ok {
		r.Report(de.Diagnostic())
		return
	}
	r.Report(NewPathError(fallback, path, err.Error()))
}
