package usecase

import (
	"context"
	"fmt"
)

// Pipeline roda passos em sequência e para no primeiro erro.
// Não há compensação: o que já foi gravado permanece gravado.
type Pipeline struct {
	steps []Step
}

type Step struct {
	Name string
	Fn   func(context.Context) error
}

// StepError identifica qual passo falhou e quantos já tinham concluído.
type StepError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step '%s' failed after %d completed: %v", e.Step, len(e.Completed), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

func (p *Pipeline) AddStep(name string, fn func(context.Context) error) {
	p.steps = append(p.steps, Step{name, fn})
}

func (p *Pipeline) Execute(ctx context.Context) error {
	completed := make([]string, 0, len(p.steps))

	for _, step := range p.steps {
		if err := step.Fn(ctx); err != nil {
			return &StepError{Step: step.Name, Completed: completed, Err: err}
		}
		completed = append(completed, step.Name)
	}

	return nil
}
