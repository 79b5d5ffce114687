package geometry

import "testing"

func TestArrowTop(t *testing.T) {
	panel := &Panel{Height: 300, PaddingBottom: 16, BorderBottom: 1}
	content := &Rect{Top: 100, Height: 500}

	tests := []struct {
		name   string
		in     ArrowInput
		want   float64
		wantOK bool
	}{
		{
			name:   "sticky top",
			in:     ArrowInput{Visibility: StickyTop, PanelTop: 80, Content: content},
			want:   100 + 3 - 80 - 6,
			wantOK: true,
		},
		{
			name:   "sticky top unmeasured",
			in:     ArrowInput{Visibility: StickyTop, PanelTop: 80},
			wantOK: false,
		},
		{
			name:   "sticky bottom",
			in:     ArrowInput{Visibility: StickyBottom, Panel: panel},
			want:   300 - 16 - 1 - 6 + 11,
			wantOK: true,
		},
		{
			name:   "sticky bottom default",
			in:     ArrowInput{Visibility: StickyBottom},
			want:   200,
			wantOK: true,
		},
		{
			name:   "fully visible event centers the arrow",
			in:     ArrowInput{PanelTop: 100, Panel: panel, Content: content, Event: &Rect{Top: 200, Height: 20}},
			want:   110 - 6,
			wantOK: true,
		},
		{
			name:   "clipped event points at visible part",
			in:     ArrowInput{PanelTop: 100, Panel: panel, Content: content, Event: &Rect{Top: 80, Height: 60}},
			want:   20 - 6,
			wantOK: true,
		},
		{
			name:   "clamped to minimum",
			in:     ArrowInput{PanelTop: 300, Panel: panel, Content: content, Event: &Rect{Top: 200, Height: 20}},
			want:   12 - 6,
			wantOK: true,
		},
		{
			name:   "clamped to panel height",
			in:     ArrowInput{PanelTop: 100, Panel: panel, Content: content, Event: &Rect{Top: 580, Height: 10}},
			want:   294 - 6,
			wantOK: true,
		},
		{
			name:   "clamped to default maximum",
			in:     ArrowInput{PanelTop: 100, Content: content, Event: &Rect{Top: 580, Height: 10}},
			want:   228 - 6,
			wantOK: true,
		},
		{
			name:   "visible without event measurement",
			in:     ArrowInput{PanelTop: 100, Content: content},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ArrowTop(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibilityOf(t *testing.T) {
	content := Rect{Top: 100, Height: 400}
	tests := []struct {
		event Rect
		want  Visibility
	}{
		{Rect{Top: 50, Height: 20}, StickyTop},
		{Rect{Top: 90, Height: 20}, Visible},
		{Rect{Top: 300, Height: 20}, Visible},
		{Rect{Top: 500, Height: 20}, StickyBottom},
	}
	for _, tt := range tests {
		if got := VisibilityOf(tt.event, content); got != tt.want {
			t.Errorf("VisibilityOf(%+v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestArrowSide(t *testing.T) {
	if side, off := ArrowSide(true); side != Right || off != -6 {
		t.Errorf("sunday: got %v %v", side, off)
	}
	if side, off := ArrowSide(false); side != Left || off != -6 {
		t.Errorf("weekday: got %v %v", side, off)
	}
}
