// Package ui provides the Bubble Tea terminal interface for darkroom.
package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/config"
	"github.com/lcamargo/darkroom/internal/portfolio"
	"github.com/lcamargo/darkroom/internal/prefs"
	"github.com/lcamargo/darkroom/internal/session"
	"github.com/lcamargo/darkroom/internal/state"
	"github.com/lcamargo/darkroom/internal/upload"
)

// View represents the current active view.
type View int

const (
	ViewGallery View = iota
	ViewWork
	ViewContact
	ViewLogin
	ViewPhotos
	ViewWorks
	ViewUpload
)

// adminView reports whether a view requires a signed-in session.
func adminView(v View) bool {
	switch v {
	case ViewPhotos, ViewWorks, ViewUpload:
		return true
	}
	return false
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.PortfolioAPI
	Session   *session.Session
	Health    *state.Store
	Config    *config.Config
	Uploader  *upload.Uploader
	PollTick  time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.PortfolioAPI
	session   *session.Session
	health    *state.Store
	config    *config.Config
	uploader  *upload.Uploader
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	currentView View
	pendingView View // admin view to enter once login succeeds
	width       int
	height      int
	ready       bool
	showHelp    bool
	confirm     *confirmModal
	notice      notice

	// Data state
	healthSnap  state.Snapshot
	lastUpdated time.Time

	gallery    *state.Collection[portfolio.GalleryEntry]
	photos     *state.Collection[api.Photo]
	works      *state.Collection[api.Work]
	categories *state.Collection[api.Category]
	workPhotos *state.Collection[api.Photo]

	// Screen state
	galleryState galleryState
	loginState   loginState
	contactState contactState
	photosState  photosState
	worksState   worksState
	uploadState  uploadState

	confirmDeletes bool
}

// notice is a transient status line shown under the command bar. It
// expires on the poll tick following its deadline.
type notice struct {
	text    string
	isError bool
	until   time.Time
}

const noticeTTL = 5 * time.Second

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 2 * time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		session:   opts.Session,
		health:    opts.Health,
		config:    opts.Config,
		uploader:  opts.Uploader,
		prefsPath: prefsPath,
		pollTick:  pollTick,

		theme:       GetTheme(opts.Prefs.Theme),
		currentView: ViewGallery,
		pendingView: ViewPhotos,

		gallery:    &state.Collection[portfolio.GalleryEntry]{},
		photos:     &state.Collection[api.Photo]{},
		works:      &state.Collection[api.Work]{},
		categories: &state.Collection[api.Category]{},
		workPhotos: &state.Collection[api.Photo]{},

		confirmDeletes: opts.Prefs.ConfirmDeletes,
	}
	m.galleryState = newGalleryState(opts.Prefs.GalleryFilter)
	m.loginState = newLoginState()
	m.contactState = newContactState()
	m.photosState = newPhotosState()
	m.worksState = newWorksState()
	m.uploadState = newUploadState()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.loadGalleryCmd(),
	}
	if m.health != nil {
		cmds = append(cmds, fetchHealthCmd(m.health))
	}
	if m.session != nil && m.session.LoggedIn() {
		cmds = append(cmds, m.verifyCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case healthMsg:
		m.healthSnap = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case galleryMsg:
		if m.gallery.Apply(msg.gen, msg.entries, msg.err) {
			m.galleryState.syncFilters(m.gallery.Snapshot().Items)
		}
		return m, nil

	case photosMsg:
		m.photos.Apply(msg.gen, msg.photos, msg.err)
		m.photosState.selected = clampIndex(m.photosState.selected, len(m.photos.Snapshot().Items))
		return m, nil

	case worksMsg:
		m.works.Apply(msg.gen, msg.works, msg.err)
		m.worksState.selected = clampIndex(m.worksState.selected, len(m.works.Snapshot().Items))
		return m, nil

	case categoriesMsg:
		m.categories.Apply(msg.gen, msg.categories, msg.err)
		return m, nil

	case workPhotosMsg:
		// Results for a work the user already navigated away from carry
		// a superseded generation and are dropped here.
		m.workPhotos.Apply(msg.gen, msg.photos, msg.err)
		return m, nil

	case photoSavedMsg:
		return m.handlePhotoSaved(msg)

	case photoDeletedMsg:
		return m.handlePhotoDeleted(msg)

	case workCreatedMsg:
		return m.handleWorkCreated(msg)

	case workDeletedMsg:
		return m.handleWorkDeleted(msg)

	case loginMsg:
		return m.handleLogin(msg)

	case verifyMsg:
		return m.handleVerify(msg)

	case contactMsg:
		return m.handleContact(msg)

	case draftsAddedMsg:
		return m.handleDraftsAdded(msg)

	case draftSettledMsg:
		return m.handleDraftSettled(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirm != nil {
		return m.confirm.render(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewGallery:
		return m.renderGallery()
	case ViewWork:
		return m.renderWork()
	case ViewContact:
		return m.renderContact()
	case ViewLogin:
		return m.renderLogin()
	case ViewPhotos:
		return m.renderPhotos()
	case ViewWorks:
		return m.renderWorks()
	case ViewUpload:
		return m.renderUpload()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	// While a text input is focused only the active screen sees keys,
	// so typed letters never trigger navigation.
	if m.typing() {
		return m.handleViewKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "e":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "g":
		m.currentView = ViewGallery
		return m, m.loadGalleryCmd()

	case "c":
		m.currentView = ViewContact
		return m, nil

	case "a":
		return m.enterAdmin(ViewPhotos)

	case "w":
		return m.enterAdmin(ViewWorks)

	case "u":
		return m.enterAdmin(ViewUpload)

	case "L":
		return m.logout()

	case "esc":
		return m.handleEscape()
	}

	return m.handleViewKey(msg)
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewGallery:
		return m.handleGalleryKey(msg)
	case ViewWork:
		return m.handleWorkViewKey(msg)
	case ViewContact:
		return m.handleContactKey(msg)
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewPhotos:
		return m.handlePhotosKey(msg)
	case ViewWorks:
		return m.handleWorksKey(msg)
	case ViewUpload:
		return m.handleUploadKey(msg)
	}
	return m, nil
}

// typing reports whether the active screen has a focused text input.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewLogin:
		return true
	case ViewContact:
		return m.contactState.typing()
	case ViewPhotos:
		return m.photosState.editing
	case ViewWorks:
		return m.worksState.creating
	case ViewUpload:
		return m.uploadState.typingPath
	}
	return false
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewWork:
		// Leaving the work gallery invalidates its collection so a slow
		// response for the old work cannot land later.
		m.workPhotos.Invalidate()
		m.galleryState.workID = 0
		m.currentView = ViewGallery
	case ViewGallery:
		// Already home.
	default:
		m.currentView = ViewGallery
	}
	return m, nil
}

// enterAdmin navigates to an admin view, detouring through the login
// screen when no session is active.
func (m Model) enterAdmin(v View) (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.LoggedIn() {
		m.pendingView = v
		m.currentView = ViewLogin
		m.loginState.focusFirst()
		return m, nil
	}
	m.currentView = v
	return m, m.adminLoads()
}

// adminLoads returns the loads every admin view needs on entry. All
// three collections feed the dashboard stats and the edit-form cycles.
func (m Model) adminLoads() tea.Cmd {
	return tea.Batch(
		m.loadPhotosCmd(),
		m.loadWorksCmd(),
		m.loadCategoriesCmd(),
	)
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.LoggedIn() {
		return m, nil
	}
	_ = m.session.Logout()
	m.notice = m.newNotice("signed out", false)
	if adminView(m.currentView) {
		m.currentView = ViewGallery
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := m.confirm
	switch msg.String() {
	case "y", "enter":
		m.confirm = nil
		return m, confirm.action
	case "n", "esc", "q":
		m.confirm = nil
		return m, nil
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.health != nil {
		cmds = append(cmds, fetchHealthCmd(m.health))
	}

	if m.notice.text != "" && time.Now().After(m.notice.until) {
		m.notice = notice{}
	}

	// Warn once the stored token has expired; the next admin request
	// would fail anyway.
	if m.session != nil && m.session.LoggedIn() && m.session.Expired(time.Now()) {
		_ = m.session.Logout()
		m.notice = m.newNotice("session expired, sign in again", true)
		if adminView(m.currentView) {
			m.pendingView = m.currentView
			m.currentView = ViewLogin
			m.loginState.focusFirst()
		}
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m Model) newNotice(text string, isError bool) notice {
	return notice{text: text, isError: isError, until: time.Now().Add(noticeTTL)}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:          m.theme.Name,
		ConfirmDeletes: m.confirmDeletes,
		GalleryFilter:  m.galleryState.filter,
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
