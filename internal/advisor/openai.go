package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

var errEmptyCompletion = errors.New("empty completion")

// OpenAIOracle asks a chat completion model for suggestions
type OpenAIOracle struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

func NewOpenAIOracle(cfg *config.Config, log *logger.Logger) *OpenAIOracle {
	clientConfig := openai.DefaultConfig(cfg.Advisor.APIKey)
	if cfg.Advisor.BaseURL != "" {
		clientConfig.BaseURL = cfg.Advisor.BaseURL
	}

	return &OpenAIOracle{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Advisor.Model,
		timeout: cfg.GetAdvisorTimeout(),
		log:     log.WithComponent(logger.ComponentAdvisor),
	}
}

func (o *OpenAIOracle) complete(ctx context.Context, system, prompt string, jsonMode bool) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	request := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", customError.WrapAdvisorError(err)
	}
	o.log.DebugContext(ctx, "Advisor completion received",
		"model", o.model,
		logger.FieldDuration, time.Since(start).Milliseconds())

	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errEmptyCompletion
	}
	return content, nil
}

func (o *OpenAIOracle) SuggestDisbursement(ctx context.Context, req domain.DisbursementCalculationRequest) (*domain.DisbursementCalculation, error) {
	prompt := fmt.Sprintf(`Calculate the optimal loan disbursement for a Kenyan university student.
Course: %s
Institution: %s
Region: %s
Academic year: %d
Semester: %d

Account for course-specific costs, regional cost of living, institution fee structures and semester timing.
Respond with a JSON object in KSh: {"tuition": number, "upkeep": number, "books": number, "supplies": number, "accommodation": number, "total": number, "reasoning": string}`,
		req.Course, req.Institution, req.Region, req.Year, req.Semester)

	content, err := o.complete(ctx, "You are an expert financial advisor specializing in Kenyan student loan optimization.", prompt, true)
	if err != nil {
		return nil, err
	}

	var calc domain.DisbursementCalculation
	if err := json.Unmarshal([]byte(content), &calc); err != nil {
		return nil, fmt.Errorf("decode disbursement: %w", err)
	}

	if calc.Total.IsZero() {
		calc.Total = calc.Tuition.Add(calc.Upkeep).Add(calc.Books).Add(calc.Supplies)
		if calc.Accommodation.Valid {
			calc.Total = calc.Total.Add(calc.Accommodation.Decimal)
		}
	}
	if !calc.Total.IsPositive() {
		return nil, fmt.Errorf("decode disbursement: total must be positive, got %s", calc.Total)
	}
	calc.Fallback = false

	return &calc, nil
}

func (o *OpenAIOracle) CategorizeTransaction(ctx context.Context, description, merchantName string) (string, error) {
	if merchantName == "" {
		merchantName = "Unknown"
	}
	prompt := fmt.Sprintf(`Categorize this transaction for a Kenyan student.
Description: %s
Merchant: %s

Common categories: %s

Return only the category name.`, description, merchantName, strings.Join(domain.TransactionCategories, ", "))

	content, err := o.complete(ctx, "You are an expert at categorizing financial transactions for students in Kenya.", prompt, false)
	if err != nil {
		return "", err
	}

	return utils.NormalizeCategory(content), nil
}

func (o *OpenAIOracle) AnalyzeBudget(ctx context.Context, input BudgetAnalysisInput) ([]domain.BudgetAdvice, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode budget input: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze this student's spending against their budgets:
%s

Focus on overspending categories, budget adherence, savings opportunities and practical spending tips.
Respond with a JSON object {"advice": [{"category": string, "message": string, "type": "warning"|"tip"|"alert", "suggestedAction": string}]}`, data)

	content, err := o.complete(ctx, "You are a financial advisor helping Kenyan students manage their loan money responsibly.", prompt, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Advice []domain.BudgetAdvice `json:"advice"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("decode advice: %w", err)
	}
	if result.Advice == nil {
		result.Advice = []domain.BudgetAdvice{}
	}

	return result.Advice, nil
}

func (o *OpenAIOracle) FinancialTip(ctx context.Context, pattern SpendingPattern) (string, error) {
	data, err := json.Marshal(pattern)
	if err != nil {
		return "", fmt.Errorf("encode spending pattern: %w", err)
	}

	prompt := fmt.Sprintf(`Based on this spending per category, give one concise and actionable tip for a Kenyan student managing loan money:
%s`, data)

	return o.complete(ctx, "You are a financial mentor helping students make better money decisions.", prompt, false)
}
