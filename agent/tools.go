package agent

import (
	"context"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a paper trading portfolio of crypto assets. He is here primarily to
			understand his positions, his realized gains, and what the market is doing.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.

			The user will assume that you know his holdings, check the portfolio first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search for market news.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert crypto trader,
		very well aware of the crypto markets, exchanges and projects,
		and of the latest news about the different coins.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in crypto trading, you can search and find about anything related to
			coins, exchanges and markets. You leverage Google Search to ground your assertions.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the user's paper portfolio.
//
// load returns the current portfolio, prices the latest known market
// prices. Both are called on every tool invocation so the analyst
// always sees fresh state.
func NewAnalyst(load func() (*papertrade.Portfolio, error), prices func() map[string]papertrade.Money) *Expert {
	lib := []Function{
		holdingsTool(load, prices),
		gainsTool(load),
		transactionsTool(load),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He has read access to the user's paper trading portfolio.
		He can report the cash balance, the open positions with their average cost,
		the realized gains, and the transaction history.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's paper trading portfolio.
				You know how to use the Tools to extract relevant information about the
				portfolio. You are part of a team of experts, yours is everything about
				the user's positions and trades. Pardon their approximative language
				and figure out what they meant.

				Use the available tools to get information about the user's portfolio:
				  - holdings and cash balance
				  - realized gains
				  - transaction history
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func respond(id, name string, output string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = output
	return fresp
}

func holdingsTool(load func() (*papertrade.Portfolio, error), prices func() map[string]papertrade.Money) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings reports the cash balance and every open position
			with its quantity, average cost and, when a market price is known,
			its market value and unrealized profit or loss.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report of the portfolio's holdings.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, err := load()
			if err != nil {
				return respond(id, "Holdings", "", err)
			}
			return respond(id, "Holdings", renderer.Holdings(p, prices()), nil)
		},
	}
}

func gainsTool(load func() (*papertrade.Portfolio, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Gains",
			Description: `Gains reports the realized performance of the portfolio:
			number of closed trades, win rate, realized profit and loss, and total traded volume.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of performance metrics.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, err := load()
			if err != nil {
				return respond(id, "Gains", "", err)
			}
			return respond(id, "Gains", renderer.Metrics(papertrade.Metrics(p.Transactions())), nil)
		},
	}
}

func transactionsTool(load func() (*papertrade.Portfolio, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Transactions",
			Description: `Transactions lists every executed trade in chronological order,
			with its symbol, side, quantity, price and timestamp.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the transaction log.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, err := load()
			if err != nil {
				return respond(id, "Transactions", "", err)
			}
			txs := papertrade.SortByTimestamp(p.Transactions(), false)
			return respond(id, "Transactions", renderer.Transactions(txs), nil)
		},
	}
}
