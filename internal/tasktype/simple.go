package tasktype

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/validation"
)

const SimpleName = "simple"

// Simple presents one free-text question per task and collects an answer
// with an optional comment.
type Simple struct{}

type simplePayload struct {
	Question string `json:"question"`
}

type SimpleAnswer struct {
	Answer  string `json:"answer" validate:"required,max=255"`
	Comment string `json:"comment"`
}

type simpleResponse struct {
	User string `json:"user"`
	SimpleAnswer
}

type simpleReview struct {
	Question  string           `json:"question"`
	Responses []simpleResponse `json:"responses"`
	Result    *SimpleAnswer    `json:"result,omitempty"`
	Expected  *SimpleAnswer    `json:"expected,omitempty"`
	// Correct compares the first response with the expected answer.
	Correct *bool `json:"correct,omitempty"`
}

func (Simple) Name() string { return SimpleName }

func (Simple) RenderInput(task domain.Task) (json.RawMessage, error) {
	p, err := decodeSimpleTask(task)
	if err != nil {
		return nil, err
	}

	return json.Marshal(p)
}

func (Simple) HandleResponse(_ domain.Task, answer json.RawMessage) (json.RawMessage, error) {
	var a SimpleAnswer
	if err := json.Unmarshal(answer, &a); err != nil {
		return nil, apperrors.NewValidationError("answer is not valid JSON").WithField("answer", err.Error())
	}

	a.Answer = strings.TrimSpace(a.Answer)

	if err := validation.ValidateStruct(a); err != nil {
		return nil, err
	}

	return json.Marshal(a)
}

func (Simple) ReviewInput(task domain.Task, material ReviewMaterial) (json.RawMessage, error) {
	p, err := decodeSimpleTask(task)
	if err != nil {
		return nil, err
	}

	out := simpleReview{Question: p.Question, Responses: make([]simpleResponse, 0, len(material.Responses))}

	for _, r := range material.Responses {
		var a SimpleAnswer
		if err := json.Unmarshal(r.Payload, &a); err != nil {
			return nil, fmt.Errorf("response %d: %w", r.ID, err)
		}

		out.Responses = append(out.Responses, simpleResponse{User: r.Username, SimpleAnswer: a})
	}

	if material.Result != nil {
		var a SimpleAnswer
		if err := json.Unmarshal(material.Result.Payload, &a); err != nil {
			return nil, fmt.Errorf("result %d: %w", material.Result.ID, err)
		}

		out.Result = &a
	}

	if material.Expected != nil {
		var a SimpleAnswer
		if err := json.Unmarshal(material.Expected.Payload, &a); err != nil {
			return nil, fmt.Errorf("expected answer for task %d: %w", task.ID, err)
		}

		out.Expected = &a

		if len(out.Responses) > 0 {
			correct := strings.EqualFold(out.Responses[0].Answer, a.Answer)
			out.Correct = &correct
		}
	}

	return json.Marshal(out)
}

func (Simple) Export(task domain.Task, responses []domain.ResponseDetail) (map[string][]byte, error) {
	p, err := decodeSimpleTask(task)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user", "answer", "comment"}); err != nil {
		return nil, err
	}

	for _, r := range responses {
		var a SimpleAnswer
		if err := json.Unmarshal(r.Payload, &a); err != nil {
			return nil, fmt.Errorf("response %d: %w", r.ID, err)
		}

		if err := w.Write([]string{r.Username, a.Answer, a.Comment}); err != nil {
			return nil, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, err
	}

	return map[string][]byte{
		"question.txt":  []byte(p.Question),
		"responses.csv": buf.Bytes(),
	}, nil
}

func decodeSimpleTask(task domain.Task) (simplePayload, error) {
	var p simplePayload
	if err := json.Unmarshal(task.Payload, &p); err != nil {
		return p, fmt.Errorf("task %d has a malformed payload: %w", task.ID, err)
	}

	return p, nil
}
