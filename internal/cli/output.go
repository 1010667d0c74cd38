package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case GuessResult:
		o.printGuessResult(v)
	case HintResult:
		o.printHintResult(v)
	case []HistoryRecord:
		o.printHistory(v)
	case PlayerStats:
		o.printStats(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case DailyStatus:
		o.printDailyStatus(v)
	case Settings:
		o.printSettings(v)
	case []UnlockedAchievement:
		o.printAchievements(v)
	case GuildChannel:
		o.printGuildChannel(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Attempt response type (matches API)
type Attempt struct {
	Word  string   `json:"word"`
	Marks []string `json:"marks"`
}

// GameState response type
type GameState struct {
	State       string    `json:"state"`
	Attempts    []Attempt `json:"attempts"`
	Remaining   int       `json:"remaining"`
	HintsUsed   int       `json:"hints_used"`
	HintDisplay string    `json:"hint_display"`
	Daily       bool      `json:"daily,omitempty"`
	StartedAt   time.Time `json:"started_at"`
}

// HistoryRecord response type
type HistoryRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Won             bool      `json:"won"`
	Word            string    `json:"word"`
	AttemptCount    int       `json:"attempt_count"`
	HintsUsed       int       `json:"hints_used"`
	DurationSeconds float64   `json:"duration_seconds"`
	Guesses         []Attempt `json:"guesses"`
	Anonymous       bool      `json:"anonymous,omitempty"`
}

// Achievement response type
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnlockedAchievement response type
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}

// EndResult response type
type EndResult struct {
	Record             HistoryRecord `json:"record"`
	NewAchievements    []Achievement `json:"new_achievements"`
	PersistenceWarning bool          `json:"persistence_warning,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Game    GameState  `json:"game"`
	Attempt Attempt    `json:"attempt"`
	End     *EndResult `json:"end,omitempty"`
}

// HintResult response type
type HintResult struct {
	Game    GameState `json:"game"`
	Letter  string    `json:"letter"`
	Display string    `json:"display"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	PlayerID    string  `json:"player_id"`
	Wins        int     `json:"wins"`
	TotalGames  int     `json:"total_games"`
	WinRate     float64 `json:"win_rate"`
	AvgAttempts float64 `json:"avg_attempts"`
}

// PlayerStats response type
type PlayerStats struct {
	TotalGames      int     `json:"total_games"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	CurrentStreak   int     `json:"current_streak"`
	AvgAttempts     float64 `json:"avg_attempts"`
	AvgHints        float64 `json:"avg_hints"`
	AvgDurationSecs float64 `json:"avg_duration_seconds"`
	TotalPlaySecs   float64 `json:"total_play_seconds"`
}

// DailyStanding response type
type DailyStanding struct {
	PlayerID   string    `json:"player_id"`
	Attempts   int       `json:"attempts"`
	FinishedAt time.Time `json:"finished_at"`
}

// DailyStatus response type
type DailyStatus struct {
	Date      string          `json:"date"`
	Played    bool            `json:"played"`
	Standings []DailyStanding `json:"standings"`
}

// Settings response type
type Settings struct {
	StatsPublic   bool      `json:"stats_public"`
	HistoryPublic bool      `json:"history_public"`
	AnonymousMode bool      `json:"anonymous_mode"`
	PersonaID     string    `json:"anonymous_persona_id"`
	HasPassword   bool      `json:"has_persona_password"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GuildChannel response type
type GuildChannel struct {
	GuildID   string    `json:"guild_id"`
	ChannelID string    `json:"channel_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func markSymbol(mark string) string {
	switch mark {
	case "correct":
		return "🟩"
	case "present":
		return "🟨"
	default:
		return "⬛"
	}
}

func renderAttempt(a Attempt) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(a.Word) {
		sb.WriteRune(r)
		sb.WriteByte(' ')
	}
	sb.WriteString("  ")
	for _, m := range a.Marks {
		sb.WriteString(markSymbol(m))
	}
	return sb.String()
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("State: %s\n", g.State)
	if g.Daily {
		fmt.Println("Daily challenge")
	}
	for _, a := range g.Attempts {
		fmt.Printf("  %s\n", renderAttempt(a))
	}
	fmt.Printf("Remaining: %d\n", g.Remaining)
	if g.HintsUsed > 0 {
		fmt.Printf("Hints: %d (%s)\n", g.HintsUsed, g.HintDisplay)
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	fmt.Printf("  %s\n", renderAttempt(r.Attempt))

	switch r.Game.State {
	case "won":
		fmt.Printf("You won in %d!\n", len(r.Game.Attempts))
	case "lost":
		fmt.Println("Out of attempts.")
		if r.End != nil {
			fmt.Printf("The word was: %s\n", strings.ToUpper(r.End.Record.Word))
		}
	default:
		fmt.Printf("Remaining: %d\n", r.Game.Remaining)
	}

	if r.End != nil {
		for _, a := range r.End.NewAchievements {
			fmt.Printf("Achievement unlocked: %s - %s\n", a.Name, a.Description)
		}
		if r.End.PersistenceWarning {
			fmt.Println("Warning: result not yet saved, it will be retried")
		}
	}
}

func (o *Output) printHintResult(h HintResult) {
	fmt.Printf("Hint: the word contains '%s'\n", strings.ToUpper(h.Letter))
	fmt.Printf("Known: %s\n", h.Display)
	fmt.Printf("Hints used: %d\n", h.Game.HintsUsed)
}

func (o *Output) printHistory(records []HistoryRecord) {
	if len(records) == 0 {
		fmt.Println("No games recorded")
		return
	}
	for _, rec := range records {
		outcome := "lost"
		if rec.Won {
			outcome = fmt.Sprintf("won in %d", rec.AttemptCount)
		}
		fmt.Printf("%s  %-6s %s (%d hints, %.0fs)\n",
			rec.Timestamp.Format("2006-01-02 15:04"), strings.ToUpper(rec.Word), outcome, rec.HintsUsed, rec.DurationSeconds)
	}
}

func (o *Output) printStats(s PlayerStats) {
	fmt.Printf("Games: %d (%d won, %d lost)\n", s.TotalGames, s.Wins, s.Losses)
	fmt.Printf("Win rate: %.0f%%\n", s.WinRate*100)
	fmt.Printf("Current streak: %d\n", s.CurrentStreak)
	fmt.Printf("Avg attempts: %.2f\n", s.AvgAttempts)
	fmt.Printf("Avg hints: %.2f\n", s.AvgHints)
	fmt.Printf("Time played: %.0fs\n", s.TotalPlaySecs)
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("No games recorded")
		return
	}
	for i, e := range entries {
		fmt.Printf("%2d. %-20s %d wins / %d games (avg %.2f attempts)\n",
			i+1, e.PlayerID, e.Wins, e.TotalGames, e.AvgAttempts)
	}
}

func (o *Output) printDailyStatus(d DailyStatus) {
	fmt.Printf("Daily challenge for %s\n", d.Date)
	if d.Played {
		fmt.Println("You have played today")
	} else {
		fmt.Println("You have not played today")
	}
	if len(d.Standings) > 0 {
		fmt.Println("Standings:")
		for i, s := range d.Standings {
			fmt.Printf("%2d. %-20s %d attempts\n", i+1, s.PlayerID, s.Attempts)
		}
	}
}

func (o *Output) printSettings(s Settings) {
	fmt.Printf("Stats public: %t\n", s.StatsPublic)
	fmt.Printf("History public: %t\n", s.HistoryPublic)
	fmt.Printf("Anonymous mode: %t\n", s.AnonymousMode)
	fmt.Printf("Anonymous persona: %s\n", s.PersonaID)
	fmt.Printf("Persona password set: %t\n", s.HasPassword)
}

func (o *Output) printAchievements(achievements []UnlockedAchievement) {
	if len(achievements) == 0 {
		fmt.Println("No achievements unlocked")
		return
	}
	for _, a := range achievements {
		fmt.Printf("%s - %s (unlocked %s)\n", a.Name, a.Description, a.UnlockedAt.Format("2006-01-02"))
	}
}

func (o *Output) printGuildChannel(g GuildChannel) {
	fmt.Printf("Guild: %s\n", g.GuildID)
	fmt.Printf("Channel: %s\n", g.ChannelID)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
