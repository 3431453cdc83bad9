package policy

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/boristopalov/recsim/pkg/core"
	"github.com/boristopalov/recsim/pkg/providers"
)

const recommendPromptTemplate = `You are a course recommendation engine for an online learning platform.

You see one learner, described by a feature vector:
- interest weights over 5 latent topics: %v
- skill level: %.3f
- available time: %.3f
- historical completion rate: %.3f
- satisfaction: %.3f
- normalized count of courses already shown: %.3f

The catalog has %d courses, numbered 0 to %d. Recommending a course the learner has already been shown is penalized, and recommendations matching the learner's interests, skill, and available time are most likely to be completed.

Pick the single course id to recommend next. Very briefly think step by step and then provide your answer. Your answer should follow the string "ANSWER" like so: ANSWER:`

var answerPattern = regexp.MustCompile(`ANSWER:\s*(\d+)`)

// LLM asks a completion model to pick the next course. The observation is
// rendered into the prompt and the reply must contain "ANSWER: <course id>".
type LLM struct {
	client providers.Completer
	model  string
}

func NewLLM(client providers.Completer, model string) *LLM {
	return &LLM{client: client, model: model}
}

func (p *LLM) SelectAction(ctx context.Context, obs core.Observation, space core.Discrete) (int, error) {
	prompt := buildRecommendPrompt(obs, space.N)

	reply, err := p.client.Complete(ctx, p.model, prompt)
	if err != nil {
		return 0, fmt.Errorf("llm policy: completion failed: %w", err)
	}

	match := answerPattern.FindStringSubmatch(reply)
	if match == nil {
		return 0, fmt.Errorf("llm policy: no ANSWER in reply: %q", reply)
	}
	action, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("llm policy: parse answer %q: %w", match[1], err)
	}
	if !space.Contains(action) {
		return 0, fmt.Errorf("llm policy: answer %d outside catalog of %d courses", action, space.N)
	}
	return action, nil
}

func (p *LLM) Observe(action int, reward float64) {}

func buildRecommendPrompt(obs core.Observation, numCourses int) string {
	// Observation layout: 5 interest weights, 4 scalar attributes, normalized
	// history count, then context noise the model has no use for.
	interests := obs[:5]
	return fmt.Sprintf(recommendPromptTemplate,
		interests,
		obs[5], obs[6], obs[7], obs[8], obs[9],
		numCourses, numCourses-1,
	)
}
