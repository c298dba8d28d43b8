package ui

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/data/dispatcher"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/atomicstack/penpal-tui/internal/notify"
	"github.com/atomicstack/penpal-tui/internal/provider"
	"github.com/atomicstack/penpal-tui/internal/theme"
	"github.com/atomicstack/penpal-tui/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// screen is one resident tab view. Implementations keep their own local
// state and read domain data from the model's stores.
type screen interface {
	tab() nav.Tab
	// activate runs when the screen becomes the active tab.
	activate(m *Model) tea.Cmd
	// handleKey reports whether the key was consumed.
	handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd)
	// editing reports whether the screen is capturing text input.
	editing() bool
	view(m *Model, width, height int) []styledLine
	footerKeys(m *Model) []key.Binding
}

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Nav        *nav.State
	Providers  provider.Providers
	Watcher    *backend.Watcher
	Notifier   notify.Notifier
	// Now overrides the clock used for relative times.
	Now func() time.Time
}

// Model implements the Bubble Tea model for the tab container.
type Model struct {
	nav         *nav.State
	unsubscribe func()
	navMu       sync.Mutex
	navQueue    []nav.Change
	inUpdate    atomic.Bool
	sender      func(tea.Msg)

	home     *homeScreen
	penpals  *penpalsScreen
	messages *messagesScreen
	study    *studyScreen
	profile  *profileScreen
	screens  map[nav.Tab]screen

	providers    provider.Providers
	stores       dispatcher.Stores
	dispatcher   *dispatcher.Dispatcher
	backend      *backend.Watcher
	backendState map[backend.Kind]error
	backendErr   string
	loading      map[backend.Kind]bool
	bus          *command.Bus
	pending      map[string]string
	notifier     notify.Notifier

	spinner      spinner.Model
	spinning     bool
	filterCursor cursor.Model
	keys         keyMap
	help         help.Model

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	now         func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the tab container with every screen resident.
func NewModel(opts Options) *Model {
	navState := opts.Nav
	if navState == nil {
		navState = nav.New(nav.TabHome)
	}
	stores := dispatcher.NewStores()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		nav:          navState,
		providers:    opts.Providers,
		stores:       stores,
		dispatcher:   dispatcher.New(stores),
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		loading:      map[backend.Kind]bool{},
		bus:          command.New(),
		pending:      map[string]string{},
		notifier:     opts.Notifier,
		keys:         defaultKeyMap(),
		help:         help.New(),
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		now:          now,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	m.home = newHomeScreen()
	m.penpals = newPenpalsScreen()
	m.messages = newMessagesScreen()
	m.study = &studyScreen{}
	m.profile = &profileScreen{}
	m.screens = map[nav.Tab]screen{}
	for _, s := range []screen{m.home, m.penpals, m.messages, m.study, m.profile} {
		m.screens[s.tab()] = s
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m.spinner = sp

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetMode(cursor.CursorStatic)
	c.Focus()
	m.filterCursor = c

	m.unsubscribe = m.nav.Subscribe(m.onNavChange)
	m.registerHandlers()
	return m
}

// AttachSender lets changes made to the navigation state from outside the
// event loop wake the model. Typically called with (*tea.Program).Send.
func (m *Model) AttachSender(send func(tea.Msg)) {
	m.navMu.Lock()
	m.sender = send
	m.navMu.Unlock()
}

// Close detaches the model from the navigation state.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Nav exposes the shared navigation state.
func (m *Model) Nav() *nav.State {
	return m.nav
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.inUpdate.Store(true)
	defer m.endUpdate()
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	} else {
		cmds = append(cmds, m.fetchAllCmds()...)
	}
	if cmd := m.activate(m.nav.CurrentTab()); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m.finishUpdate(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.inUpdate.Store(true)
	defer m.endUpdate()

	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(fetchedMsg{}):        m.handleFetchedMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResult,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTick,
		reflect.TypeOf(navChangedMsg{}):     m.handleNavChangedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.drainNav()...)
	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	n := 0
	for _, cmd := range cmds {
		if cmd != nil {
			cmds[n] = cmd
			n++
		}
	}
	cmds = cmds[:n]
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) activeScreen() screen {
	return m.screens[m.nav.CurrentTab()]
}

func (m *Model) busy() bool {
	if len(m.pending) > 0 {
		return true
	}
	for _, loading := range m.loading {
		if loading {
			return true
		}
	}
	return false
}

func (m *Model) handleSpinnerTick(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
