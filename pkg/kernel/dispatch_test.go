package kernel

import (
	"bytes"
	"log/slog"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

func TestBorrowIsExclusive(t *testing.T) {
	k := New(config.Default())
	ctx := k.borrow()
	assert.Panics(t, func() { k.borrow() })
	assert.Panics(t, func() { k.Query(CursorPosition{}) })
	assert.Panics(t, func() { k.NewID() })
	k.release(ctx)
	assert.Nil(t, ctx.Scene)
	assert.NotPanics(t, func() { k.release(k.borrow()) })
}

func TestEveryCommandHasAHandler(t *testing.T) {
	cmds := []Command{
		AddPoint{}, MovePoint{}, RenameObject{}, MergeSelectedPoints{},
		AddTorus{}, UpdateTorus{}, TransformTorus{},
		AddBezierC0{}, AddPointToBezierC0{}, DeletePointsFromBezierC0{},
		AddBezierC2{}, AddPointToBezierC2{}, DeletePointsFromBezierC2{},
		SelectBezierC2Bernstein{}, MoveBezierC2Bernstein{},
		AddBezierInt{}, AddPointToBezierInt{}, DeletePointsFromBezierInt{},
		SetDrawPolygon{}, AddSurfaceC0{}, AddSurfaceC2{}, CreateSurfaceC0{}, CreateSurfaceC2{},
		CalculateGregories{}, UpdateGregory{},
		FindIntersection{}, SetIntersectionTextureDraw{}, IntersectionToInterpolated{},
		SelectObjects{}, ToggleSelection{}, ClearSelection{}, SetCursor{},
		TransformSelected{}, DeleteSelectedObjects{}, LoadScene{}, ClearScene{},
	}
	k := New(config.Default())
	assert.Len(t, k.commands, len(cmds))
	for _, c := range cmds {
		assert.NotPanics(t, func() { k.Execute(c) }, requestName(c))
	}
}

func TestRefusalIsLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	k := New(config.Default())
	k.Execute(MovePoint{ID: 5, Position: v3.Vec{X: 1}})
	assert.Contains(t, buf.String(), "command=MovePoint")
	assert.Contains(t, buf.String(), "not found")
}

func TestSecondaryEventsFollowTheirCause(t *testing.T) {
	k := New(config.Default())
	var log []events.Kind
	k.Bus().SubscribeAll(func(e events.Event) { log = append(log, e.Kind()) })

	var pts []Command
	for i := 0; i < 4; i++ {
		pts = append(pts, AddPoint{ID: k.NewID(), Position: v3.Vec{X: float64(i)}})
	}
	for _, c := range pts {
		k.Execute(c)
	}
	k.Execute(AddBezierC2{ID: k.NewID(), Points: k.scene.SelectedOf(scene.KindPoint)})
	require.Len(t, k.scene.BezierC2s, 0)

	c2 := k.NewID()
	k.Execute(AddBezierC2{ID: c2, Points: scene.SortedIDs(k.scene.Points)})
	log = nil
	k.Execute(MovePoint{ID: 1, Position: v3.Vec{Y: 1}})
	assert.Equal(t, []events.Kind{events.KindPointMoved, events.KindBezierC2PointMoved}, log)
}

func TestInvariantCheckPanics(t *testing.T) {
	cfg := config.Default()
	cfg.CheckInvariants = true
	k := New(cfg)
	k.Execute(AddPoint{ID: k.NewID()})
	c := k.NewID()
	k.Execute(AddBezierC2{ID: c, Points: []ids.ID{1, 1, 1, 1}})
	// Corrupt the cache behind the kernel's back.
	k.scene.BezierC2s[c].Bernstein[0] = v3.Vec{X: 9}
	assert.Panics(t, func() { k.Execute(SetCursor{Position: v3.Vec{X: 1}}) })
}
