package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/docs"
	"github.com/etnz/cashflow/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Source returns the transactions the analyst answers from.
type Source func() (cashflow.Transactions, error)

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// NewFacilitator returns the expert leading the conversation with the user.
func NewFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user comes to understand where their money goes: spending, income, categories, merchants
			and how they evolve over time. Amounts are in pounds sterling unless told otherwise.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in markdown.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns a personal finance expert grounded with Google Search.
func NewAdvisor(model string) *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor, aware of budgeting practices, UK and Korean
		banking, and the latest news about prices and exchange rates.
		Ask the Advisor whenever you need advice or recent grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a personal finance advisor. You leverage Google Search to ground your assertions.
			You give practical budgeting advice and relate recent news to the user's spending.
			`),
		},
	}
}

// NewAnalyst returns the expert reading the user's transactions.
func NewAnalyst(model string, src Source) *Expert {
	lib := AnalystFunctions(src)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's bank transactions and compute
		the relevant figures: totals, averages, categories, merchants, and monthly to yearly summaries.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
				You are an analyst in charge of the user's bank transactions.
				You know how to use the Tools to extract relevant figures about the user's cash flow.
				You are part of a team of experts, yours is everything about the user's transactions. They might ask
				you questions with approximate language, figure out what they meant.

				Spending amounts are positive in the tools' responses, the net is income minus spending.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// AnalystFunctions returns the tools of the analyst.
func AnalystFunctions(src Source) []*Func {
	return []*Func{
		analysisFunc(src, "Overview",
			"Overview returns the total spending and income, the net cash flow, the averages, and the date range of all transactions, in json.",
			func(a *cashflow.Analysis, _ map[string]any) (any, error) { return a.Overview, nil }),
		analysisFunc(src, "Categories",
			"Categories returns the spending per category, largest first, with the count of transactions and the share of the total spending, in json.",
			func(a *cashflow.Analysis, _ map[string]any) (any, error) { return a.Categories, nil }),
		analysisFunc(src, "Merchants",
			"Merchants returns the ten merchants the user spent the most with, in json.",
			func(a *cashflow.Analysis, _ map[string]any) (any, error) { return a.Merchants, nil }),
		periodsFunc(src),
		categoryFunc(src),
	}
}

// analysisFunc declares a function without parameters answering from the analysis.
func analysisFunc(src Source, name, description string, answer func(*cashflow.Analysis, map[string]any) (any, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response:    &genai.Schema{Type: genai.TypeString, Description: "A json document."},
		},
		Func: analysisCall(src, name, answer),
	}
}

func analysisCall(src Source, name string, answer func(*cashflow.Analysis, map[string]any) (any, error)) func(context.Context, string, map[string]any) *genai.FunctionResponse {
	return func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
		txs, err := src()
		if err != nil {
			return errorResponse(id, name, fmt.Errorf("could not load transactions: %w", err))
		}
		a, err := cashflow.Analyze(txs)
		if err != nil {
			return errorResponse(id, name, err)
		}
		v, err := answer(a, args)
		if err != nil {
			return errorResponse(id, name, err)
		}
		var output string
		switch v := v.(type) {
		case string:
			output = v
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return errorResponse(id, name, err)
			}
			output = string(b)
		}
		return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
	}
}

var periodSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The period to group transactions by, monthly by default.\n\n" + must(docs.GetTopic("periods")),
}

// period reads the optional "period" argument.
func period(args map[string]any) (date.Period, error) {
	v, ok := args["period"]
	if !ok {
		return date.Monthly, nil
	}
	s, ok := v.(string)
	if !ok {
		return date.Monthly, fmt.Errorf("argument 'period' is not a string as expected but %T", v)
	}
	return date.ParsePeriod(s)
}

func periodsFunc(src Source) *Func {
	const name = "Periods"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Periods returns the spending, income and net of every period holding transactions, in json.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"period": periodSchema},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A json list of period summaries."},
		},
		Func: analysisCall(src, name, func(a *cashflow.Analysis, args map[string]any) (any, error) {
			p, err := period(args)
			if err != nil {
				return nil, err
			}
			return a.Summary(p), nil
		}),
	}
}

func categoryFunc(src Source) *Func {
	const name = "Category"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Category details the transactions of a single category and their totals per period.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":   {Type: genai.TypeString, Description: "The category name, case insensitive, as returned by Categories."},
					"period": periodSchema,
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
		},
		Func: analysisCall(src, name, func(a *cashflow.Analysis, args map[string]any) (any, error) {
			category, ok := args["name"].(string)
			if !ok {
				return nil, fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"])
			}
			p, err := period(args)
			if err != nil {
				return nil, err
			}
			r, err := cashflow.CategoryDetail(a.Transactions, category, p)
			if err != nil {
				return nil, err
			}
			return renderer.RenderCategory(r, p, renderer.CategoryRenderOptions{}), nil
		}),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
