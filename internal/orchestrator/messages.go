package orchestrator

import (
	"context"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

// Msg is the result of a Task. It must be handed back to Handle on the
// state thread.
type Msg interface {
	orchestratorMsg()
}

// Task performs remote work off the state thread
type Task func(ctx context.Context) Msg

// pageLoadedMsg carries a catalog page
type pageLoadedMsg struct {
	tab    domain.Tab
	page   int
	key    string
	result domain.Page
	err    error

	// search is set when the page was loaded to run a local search over it
	search string
}

// searchResultsMsg carries remote search results
type searchResultsMsg struct {
	tab   domain.Tab
	term  string
	key   string
	items []domain.Item
	err   error
}

// detailLoadedMsg carries a record fetched by id
type detailLoadedMsg struct {
	seq  int
	ref  state.DetailRef
	item domain.Item
	err  error
}

func (pageLoadedMsg) orchestratorMsg()    {}
func (searchResultsMsg) orchestratorMsg() {}
func (detailLoadedMsg) orchestratorMsg()  {}
