package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/result"
)

// View carries the locale-bound helpers every template receives.
type View struct {
	locale  i18n.Locale
	tr      i18n.Translator
	printer *message.Printer
}

func newView(ctx context.Context) *View {
	locale := i18n.FromContext(ctx)
	tag := language.Indonesian
	if locale == i18n.English {
		tag = language.English
	}
	return &View{locale: locale, tr: i18n.NewTranslator(locale), printer: message.NewPrinter(tag)}
}

func (v *View) Locale() string { return string(v.locale) }

// T translates a catalog key.
func (v *View) T(key string) string { return v.tr.T(i18n.Key(key)) }

// Label translates an enumerated value such as a status, e.g. Label("status", "active").
func (v *View) Label(group, value string) string {
	key := group + "." + value
	if s := v.tr.T(i18n.Key(key)); s != key {
		return s
	}
	return value
}

// Num formats a number with the locale's digit grouping and one decimal for floats.
func (v *View) Num(x interface{}) string {
	switch n := x.(type) {
	case float64:
		if n == float64(int64(n)) {
			return v.printer.Sprintf("%d", int64(n))
		}
		return v.printer.Sprintf("%.1f", n)
	case int, int64:
		return v.printer.Sprintf("%d", n)
	default:
		return fmt.Sprint(x)
	}
}

func (v *View) Money(idr int64) string { return "Rp " + v.printer.Sprintf("%d", idr) }

func (v *View) Pct(x float64) string { return v.printer.Sprintf("%.1f%%", x) }

var monthNames = map[i18n.Locale][12]string{
	i18n.Indonesian: {"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
	i18n.English:    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// Month turns "2006-01" into a short localized label.
func (v *View) Month(ym string) (string, error) {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return "", fmt.Errorf("invalid month %q", ym)
	}
	return fmt.Sprintf("%s %d", monthNames[v.locale][t.Month()-1], t.Year()), nil
}

// mapResult transforms the payload of an Ok result. An error from f is a
// rendering failure and is returned as such; Err results pass through.
func mapResult[A, B any](r result.Result[A], f func(A) (B, error)) (result.Result[B], error) {
	a, ok := r.Data()
	if !ok {
		return result.Err[B](r.ErrorMessage()), nil
	}
	b, err := f(a)
	if err != nil {
		return result.Result[B]{}, err
	}
	return result.Ok(b), nil
}

type rowsView struct {
	*View
	Rows interface{}
}

// With pairs rows with the view so shared table templates can translate.
func (v *View) With(rows interface{}) rowsView { return rowsView{View: v, Rows: rows} }
