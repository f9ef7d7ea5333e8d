package state

import (
	"sync"

	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/types"
)

// Store holds all session state behind named mutation actions. It is an
// explicit, injectable object; there is no package-level singleton.
//
// Concurrent analyze requests follow last-started-wins: BeginAnalysis hands
// out a monotonically increasing token and Complete/FailAnalysis ignore any
// token that is no longer the latest, so a stale in-flight request can never
// overwrite a newer result.
type Store struct {
	mu sync.RWMutex

	theme     string
	isLoading bool

	inputText string
	inputURL  string

	currentAnalysis *types.AnalysisResult
	analysisHistory []types.AnalysisResult
	historySize     int

	apiKey   string
	settings types.Settings

	activeTab    string
	showSettings bool

	latestSeq uint64
}

// Snapshot is a point-in-time read view of the store.
type Snapshot struct {
	Theme           string
	IsLoading       bool
	InputText       string
	InputURL        string
	CurrentAnalysis *types.AnalysisResult
	AnalysisHistory []types.AnalysisResult
	APIKey          string
	Settings        types.Settings
	ActiveTab       string
	ShowSettings    bool
}

// SettingsPatch carries partial settings updates; nil fields are left as-is.
type SettingsPatch struct {
	Notifications    *bool
	DefaultTimeframe *string
	RiskTolerance    *string
}

// New creates a store seeded from config defaults.
func New(cfg *store.Config) *Store {
	return &Store{
		theme:       "dark",
		historySize: cfg.HistorySize,
		settings: types.Settings{
			Notifications:    cfg.Settings.Notifications,
			DefaultTimeframe: cfg.Settings.DefaultTimeframe,
			RiskTolerance:    cfg.Settings.RiskTolerance,
		},
		activeTab: cfg.Settings.DefaultTimeframe,
	}
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]types.AnalysisResult, len(s.analysisHistory))
	copy(history, s.analysisHistory)

	return Snapshot{
		Theme:           s.theme,
		IsLoading:       s.isLoading,
		InputText:       s.inputText,
		InputURL:        s.inputURL,
		CurrentAnalysis: s.currentAnalysis,
		AnalysisHistory: history,
		APIKey:          s.apiKey,
		Settings:        s.settings,
		ActiveTab:       s.activeTab,
		ShowSettings:    s.showSettings,
	}
}

func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

func (s *Store) SetLoading(isLoading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = isLoading
}

func (s *Store) SetInputText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputText = text
}

func (s *Store) SetInputURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputURL = url
}

// SetCurrentAnalysis replaces the current result wholesale, outside of any
// in-flight request bookkeeping. Prefer BeginAnalysis/CompleteAnalysis for
// request-driven updates.
func (s *Store) SetCurrentAnalysis(result types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentAnalysis = &result
}

// AddToHistory prepends result and truncates to the configured cap.
func (s *Store) AddToHistory(result types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendHistoryLocked(result)
}

func (s *Store) appendHistoryLocked(result types.AnalysisResult) {
	history := make([]types.AnalysisResult, 0, len(s.analysisHistory)+1)
	history = append(history, result)
	history = append(history, s.analysisHistory...)
	if len(history) > s.historySize {
		history = history[:s.historySize]
	}
	s.analysisHistory = history
}

func (s *Store) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// UpdateSettings merges non-nil patch fields into the settings.
func (s *Store) UpdateSettings(patch SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Notifications != nil {
		s.settings.Notifications = *patch.Notifications
	}
	if patch.DefaultTimeframe != nil {
		s.settings.DefaultTimeframe = *patch.DefaultTimeframe
	}
	if patch.RiskTolerance != nil {
		s.settings.RiskTolerance = *patch.RiskTolerance
	}
}

func (s *Store) SetActiveTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

func (s *Store) SetShowSettings(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSettings = show
}

func (s *Store) ClearInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputText = ""
	s.inputURL = ""
}

func (s *Store) ClearAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentAnalysis = nil
}

// BeginAnalysis registers a new in-flight request, flips the loading flag
// and returns the request token to pass to CompleteAnalysis/FailAnalysis.
func (s *Store) BeginAnalysis() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestSeq++
	s.isLoading = true
	return s.latestSeq
}

// CompleteAnalysis applies result if seq is still the latest request.
// Stale results are discarded and false is returned.
func (s *Store) CompleteAnalysis(seq uint64, result types.AnalysisResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latestSeq {
		return false
	}
	s.currentAnalysis = &result
	s.appendHistoryLocked(result)
	s.isLoading = false
	return true
}

// FailAnalysis resets the loading flag for the latest request. The prior
// result, if any, is retained unchanged.
func (s *Store) FailAnalysis(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latestSeq {
		return false
	}
	s.isLoading = false
	return true
}
