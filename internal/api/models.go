package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
)

// SelectCardRequest defines the payload for revealing a card.
type SelectCardRequest struct {
	CardID string `json:"card_id" validate:"required,max=64,printascii"`
}

// CardResponse is one card as the client may render it. Content and Icon are
// only present while the card is face up.
type CardResponse struct {
	ID      string `json:"id"`
	Face    string `json:"face"`
	Content string `json:"content,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// ScoreEntryResponse is a saved game result.
type ScoreEntryResponse struct {
	Moves          int    `json:"moves"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Elapsed        string `json:"elapsed"`
	Score          int    `json:"score"`
	// Date is RFC 3339, empty when the stored entry carried no usable date.
	Date string `json:"date,omitempty"`
}

// GameResponse is the client view of a session.
type GameResponse struct {
	ID             uuid.UUID           `json:"id"`
	Status         string              `json:"status"`
	Cards          []CardResponse      `json:"cards"`
	Moves          int                 `json:"moves"`
	ElapsedSeconds int                 `json:"elapsed_seconds"`
	Elapsed        string              `json:"elapsed"`
	MatchedPairs   int                 `json:"matched_pairs"`
	TotalPairs     int                 `json:"total_pairs"`
	Locked         bool                `json:"locked"`
	Won            bool                `json:"won"`
	Score          *ScoreEntryResponse `json:"score,omitempty"`
}

// SelectCardResponse reports whether a selection was applied along with the
// resulting game state.
type SelectCardResponse struct {
	Accepted bool         `json:"accepted"`
	Game     GameResponse `json:"game"`
}

// LeaderboardResponse lists the best results, highest score first.
type LeaderboardResponse struct {
	Entries []ScoreEntryResponse `json:"entries"`
}

func scoreEntryToResponse(entry domain.ScoreEntry) ScoreEntryResponse {
	resp := ScoreEntryResponse{
		Moves:          entry.Moves,
		ElapsedSeconds: entry.ElapsedSeconds,
		Elapsed:        domain.FormatElapsed(entry.ElapsedSeconds),
		Score:          entry.Score,
	}
	if !entry.Timestamp.IsZero() {
		resp.Date = entry.Timestamp.UTC().Format(time.RFC3339)
	}
	return resp
}

func snapshotToResponse(snap game.Snapshot) GameResponse {
	cards := make([]CardResponse, len(snap.Cards))
	for i, card := range snap.Cards {
		cards[i] = CardResponse{
			ID:      card.ID,
			Face:    string(card.Face),
			Flipped: card.Flipped,
			Matched: card.Matched,
		}
		if card.Flipped {
			cards[i].Content = card.Content
			cards[i].Icon = card.Icon
		}
	}

	resp := GameResponse{
		ID:             snap.ID,
		Status:         string(snap.Status),
		Cards:          cards,
		Moves:          snap.Moves,
		ElapsedSeconds: snap.ElapsedSeconds,
		Elapsed:        snap.Elapsed(),
		MatchedPairs:   snap.MatchedPairs,
		TotalPairs:     snap.TotalPairs,
		Locked:         snap.Locked,
		Won:            snap.Won(),
	}
	if snap.Score != nil {
		score := scoreEntryToResponse(*snap.Score)
		resp.Score = &score
	}
	return resp
}

func leaderboardToResponse(board domain.Leaderboard) LeaderboardResponse {
	entries := make([]ScoreEntryResponse, len(board))
	for i, entry := range board {
		entries[i] = scoreEntryToResponse(entry)
	}
	return LeaderboardResponse{Entries: entries}
}
