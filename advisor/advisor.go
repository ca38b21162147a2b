// Package advisor generates AI-written portfolio analyses and study quizzes
// through the Gemini API. Models are tried in priority order; only when the
// whole list fails does a call return an error.
package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	stockstudy "github.com/Dream-page/stockstudy"
	"google.golang.org/genai"
)

// modelPriority is the ordered list of models to try; the first one that
// answers wins. Free-tier quotas differ per model, so a 429 on the first is
// routine rather than exceptional.
var modelPriority = []string{
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
	"gemini-pro",
}

// Advisor generates content through a Gemini client.
type Advisor struct {
	client *genai.Client
	// Models overrides modelPriority when non-empty.
	Models []string
}

// New creates an advisor. The client picks up GEMINI_API_KEY from the
// environment.
func New(ctx context.Context) (*Advisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini client: %w", err)
	}
	return &Advisor{client: client}, nil
}

func (a *Advisor) models() []string {
	if len(a.Models) > 0 {
		return a.Models
	}
	return modelPriority
}

// generate sends the prompt to each model in priority order and returns the
// first answer.
func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range a.models() {
		resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			log.Printf("model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("model %s: empty response", model)
			continue
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// AnalyzePortfolio asks for a markdown review of the current portfolio
// against the macro picture.
func (a *Advisor) AnalyzePortfolio(ctx context.Context, snap stockstudy.Snapshot) (string, error) {
	return a.generate(ctx, portfolioPrompt(snap))
}

// Quiz asks for a short comprehension quiz over recent study notes.
func (a *Advisor) Quiz(ctx context.Context, notes []stockstudy.StudyNote) (string, error) {
	if len(notes) == 0 {
		return "", fmt.Errorf("no study notes to quiz on")
	}
	return a.generate(ctx, quizPrompt(notes))
}

func portfolioPrompt(snap stockstudy.Snapshot) string {
	var b strings.Builder
	b.WriteString("당신은 개인 투자자의 포트폴리오를 검토하는 애널리스트입니다.\n")
	b.WriteString("아래 보유 종목과 거시경제 지표를 바탕으로, 리밸런싱 관점의 분석을 마크다운으로 작성하세요.\n")
	b.WriteString("형식: ## 총평 (3줄), ## 종목별 코멘트, ## 리스크 요인.\n\n")

	rate := snap.Settings.ExchangeRate
	fmt.Fprintf(&b, "환율: USD/KRW %.0f (%s 기준)\n\n", rate.Rate, rate.Source)

	score := stockstudy.ScoreIndicators(snap.Indicators)
	fmt.Fprintf(&b, "시장 점수: %d (범위 %d..%d)\n\n", score.Total, score.Min, score.Max)

	b.WriteString("보유 종목:\n")
	for _, h := range snap.Portfolio {
		pl := stockstudy.PositionProfitLoss(h)
		fmt.Fprintf(&b, "- %s (%s, %s, %s): 수량 %v, 평단 %v, 현재가 %v, 손익률 %s%%\n",
			h.Name, h.Ticker, h.Country, h.Category, h.Quantity, h.AvgPrice, h.CurrentPrice, pl.Rate.StringFixed(1))
	}
	return b.String()
}

func quizPrompt(notes []stockstudy.StudyNote) string {
	var b strings.Builder
	b.WriteString("아래 학습 노트를 바탕으로 4지선다 퀴즈 3문항을 만드세요.\n")
	b.WriteString("각 문항은 질문, 보기 A-D, 정답, 해설 순서의 마크다운으로 작성하세요.\n\n")
	for i, n := range notes {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "## %s\n", n.Title)
		if n.Content != "" {
			content := n.Content
			if len(content) > 2000 {
				content = content[:2000]
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String()
}
