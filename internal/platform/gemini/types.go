package gemini

// promptData represents the data passed to the prompt template.
type promptData struct {
	Root  string
	Gloss string
	Forms []string
}

// ResponseSchema represents the expected structure of the Gemini response.
type ResponseSchema struct {
	// Examples is the array of usage examples, one per requested form.
	Examples []ExampleSchema `json:"examples"`
}

// ExampleSchema represents a single usage example in the API response.
type ExampleSchema struct {
	// Form is the conjugated surface form the sentence illustrates.
	Form string `json:"form"`

	// Sentence is a short Tagalog sentence using the form.
	Sentence string `json:"sentence"`
}
