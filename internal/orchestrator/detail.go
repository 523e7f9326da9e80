package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

// Phase is the detail resolution step
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseResolvedLocal
	PhaseFetchingRemote
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseResolvedLocal:
		return "resolved-local"
	case PhaseFetchingRemote:
		return "fetching-remote"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// detailMachine guards detail resolution. Only PhaseIdle starts a run, so
// the store updates a run makes never start another.
type detailMachine struct {
	phase Phase
	seq   int // identifies the current run; stale fetches carry an older one
	ref   state.DetailRef
}

func (m *detailMachine) active() bool {
	return m.phase == PhaseResolving || m.phase == PhaseFetchingRemote
}

// reset abandons any run in progress
func (m *detailMachine) reset() {
	m.phase = PhaseIdle
	m.seq++
}

// DetailPhase reports the detail resolution step
func (o *Orchestrator) DetailPhase() Phase {
	return o.detail.phase
}

// NavigateToDetail opens the detail view for a record
func (o *Orchestrator) NavigateToDetail(itemType domain.ItemType, id int) []Task {
	o.detail.reset()
	o.update(func(s *state.AppState) {
		s.CurrentView = state.ViewDetail
		s.Detail = &state.DetailRef{Type: itemType, ID: id}
	})
	return o.drain()
}

// GoBack returns to the list
func (o *Orchestrator) GoBack() []Task {
	o.detail.reset()
	o.update(func(s *state.AppState) {
		s.CurrentView = state.ViewHome
		s.Detail = nil
	})
	o.renderList()
	return o.drain()
}

// resolveDetail runs from a store notification. It looks in the loaded list
// first and queues a fetch by id when the record is not there.
func (o *Orchestrator) resolveDetail(ref state.DetailRef) {
	o.detail.phase = PhaseResolving
	o.detail.ref = ref
	o.update(func(*state.AppState) {})

	items := o.store.Snapshot().Items(ref.Type.Tab())
	if item := domain.FindByID(items, ref.ID); item != nil {
		o.detail.phase = PhaseResolvedLocal
		o.logger.Debug("detail resolved locally", "type", ref.Type, "id", ref.ID)
		o.presenter.RenderDetailContent(o.renderer.Detail(item))
		o.finishDetail()
		return
	}

	loader := o.loaders.ForItemType(ref.Type)
	if loader == nil {
		o.presenter.ShowError(fmt.Sprintf("Could not load %s %d", ref.Type, ref.ID))
		o.finishDetail()
		return
	}

	o.detail.phase = PhaseFetchingRemote
	seq := o.detail.seq
	o.pending = append(o.pending, func(ctx context.Context) Msg {
		item, err := loader.ByID(ctx, ref.ID)
		return detailLoadedMsg{seq: seq, ref: ref, item: item, err: err}
	})
}

func (o *Orchestrator) handleDetailLoaded(msg detailLoadedMsg) {
	if msg.seq != o.detail.seq || o.detail.phase != PhaseFetchingRemote {
		o.logger.Debug("dropping stale detail", "type", msg.ref.Type, "id", msg.ref.ID)
		return
	}

	switch {
	case errors.Is(msg.err, domain.ErrNotFound):
		o.presenter.ShowError(fmt.Sprintf("The requested %s (%d) was not found", msg.ref.Type, msg.ref.ID))
	case msg.err != nil:
		o.logger.Error("failed to load detail", "type", msg.ref.Type, "id", msg.ref.ID, "error", msg.err)
		o.presenter.ShowError(fmt.Sprintf("Could not load %s details", msg.ref.Type))
	case msg.item == nil:
		o.presenter.ShowError(fmt.Sprintf("The requested %s (%d) was not found", msg.ref.Type, msg.ref.ID))
	default:
		o.presenter.RenderDetailContent(o.renderer.Detail(msg.item))
	}
	o.finishDetail()
}

func (o *Orchestrator) finishDetail() {
	o.detail.phase = PhaseDone
	o.update(func(*state.AppState) {})
}
