package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/models"
)

func TestReduce_ReplacesSlices(t *testing.T) {
	s := NewState(models.View2D, models.ModeArchVision)
	nodes := []models.Node{{ID: "a"}, {ID: "b"}}
	edges := []models.Edge{{ID: "e", Source: "a", Target: "b"}}

	s = Reduce(s, SetMode{Mode: models.ModeHybrid})
	s = Reduce(s, SetView{View: models.ViewIso})
	s = Reduce(s, SetNodes{Nodes: nodes})
	s = Reduce(s, SetEdges{Edges: edges})
	s = Reduce(s, SelectNodes{IDs: []string{"a"}})
	s = Reduce(s, SelectEdges{IDs: []string{"e"}})
	s = Reduce(s, SetLoading{Loading: true})
	s = Reduce(s, SetError{Message: "boom"})

	assert.Equal(t, models.ModeHybrid, s.CurrentMode)
	assert.Equal(t, models.ViewIso, s.CurrentView)
	assert.Equal(t, nodes, s.Nodes)
	assert.Equal(t, edges, s.Edges)
	assert.Equal(t, []string{"a"}, s.SelectedNodes)
	assert.Equal(t, []string{"e"}, s.SelectedEdges)
	assert.True(t, s.IsLoading)
	assert.Equal(t, "boom", s.Error)

	s = Reduce(s, SetNodes{Nodes: []models.Node{{ID: "c"}}})
	assert.Equal(t, []models.Node{{ID: "c"}}, s.Nodes, "no merge with previous nodes")
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	nodes := []models.Node{{ID: "a", Data: models.NodeData{"label": "A"}}}
	s := Reduce(NewState(models.View2D, models.ModeArchVision), SetNodes{Nodes: nodes})
	nodes[0].Data["label"] = "mutated"
	assert.Equal(t, "A", s.Nodes[0].Data.Label())
}

func TestReduce_Chat(t *testing.T) {
	s := NewState(models.View2D, models.ModeArchVision)
	s = Reduce(s, AppendMessage{Message: models.ChatMessage{Sender: models.SenderUser, Content: "draw"}})
	s = Reduce(s, AppendMessage{Message: models.ChatMessage{Sender: models.SenderAssistant, Content: "ok", DiagramCode: "graph TD"}})

	require.Len(t, s.Messages, 2)
	assert.NotEmpty(t, s.Messages[0].ID)
	assert.False(t, s.Messages[0].Timestamp.IsZero())
	assert.Equal(t, "graph TD", s.Messages[1].DiagramCode)

	s = Reduce(s, ResetChat{})
	assert.Empty(t, s.Messages)
	assert.NotNil(t, s.Messages)
}

func TestLiveSelection(t *testing.T) {
	s := NewState(models.View2D, models.ModeArchVision)
	s = Reduce(s, SetNodes{Nodes: []models.Node{{ID: "a"}}})
	s = Reduce(s, SetEdges{Edges: []models.Edge{{ID: "e1"}}})
	s = Reduce(s, SelectNodes{IDs: []string{"a", "gone"}})
	s = Reduce(s, SelectEdges{IDs: []string{"e0", "e1"}})

	assert.Equal(t, []string{"a", "gone"}, s.SelectedNodes, "reducer stores what it is given")
	assert.Equal(t, []string{"a"}, s.LiveSelectedNodes())
	assert.Equal(t, []string{"e1"}, s.LiveSelectedEdges())
}

func TestActionTypes(t *testing.T) {
	names := map[string]Action{
		"SET_MODE":     SetMode{},
		"SET_VIEW":     SetView{},
		"SET_NODES":    SetNodes{},
		"SET_EDGES":    SetEdges{},
		"SELECT_NODES": SelectNodes{},
		"SELECT_EDGES": SelectEdges{},
		"SET_LOADING":  SetLoading{},
		"SET_ERROR":    SetError{},
	}
	for want, a := range names {
		assert.Equal(t, want, a.Type())
	}
}

func TestStore_DispatchAndSubscribe(t *testing.T) {
	st := New(NewState(models.View2D, models.ModeArchVision))

	var mu sync.Mutex
	var seen []string
	unsubscribe := st.Subscribe(func(s State, a Action) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, a.Type())
	})

	next := st.Dispatch(SetView{View: models.View3D})
	assert.Equal(t, models.View3D, next.CurrentView)
	assert.Equal(t, models.View3D, st.State().CurrentView)

	unsubscribe()
	st.Dispatch(SetLoading{Loading: true})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"SET_VIEW"}, seen)
}

func TestStore_StateIsCopy(t *testing.T) {
	st := New(NewState(models.View2D, models.ModeArchVision))
	st.Dispatch(SetNodes{Nodes: []models.Node{{ID: "a", Data: models.NodeData{}}}})

	snap := st.State()
	snap.Nodes[0].ID = "changed"
	assert.Equal(t, "a", st.State().Nodes[0].ID)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	st := New(NewState(models.View2D, models.ModeArchVision))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(AppendMessage{Message: models.ChatMessage{Content: "x"}})
		}()
	}
	wg.Wait()
	assert.Len(t, st.State().Messages, 50)
}
