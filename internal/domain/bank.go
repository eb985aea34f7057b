package domain

// DefaultBankID names the built-in capital cities bank.
const DefaultBankID = "capitals"

var capitals = []Question{
	{Prompt: "What is the capital of France?", Answer: "Paris"},
	{Prompt: "What is the capital of India?", Answer: "New Delhi"},
	{Prompt: "What is the capital of United States?", Answer: "Washington D.C"},
	{Prompt: "What is the capital of United Kingdom?", Answer: "London"},
	{Prompt: "What is the capital of Germany?", Answer: "Berlin"},
	{Prompt: "What is the capital of Japan?", Answer: "Tokyo"},
	{Prompt: "What is the capital of Italy?", Answer: "Rome"},
}

// DefaultBank returns the built-in seven question bank.
func DefaultBank() Bank {
	bank, err := NewBank(DefaultBankID, capitals)
	if err != nil {
		panic(err)
	}
	return bank
}
