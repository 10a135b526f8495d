// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// systemInstruction is the fixed system prompt for every generation request.
// It does not vary with input.
const systemInstruction = `You are an expert at creating effective ChatGPT prompts.
Your task is to take a template and parameters, then generate a high-quality, detailed prompt that will get the best results from ChatGPT.

Guidelines:
- Make the prompt specific and detailed
- Include clear instructions and context
- Use professional, clear language
- Ensure the prompt is actionable and complete
- Add relevant details that will help ChatGPT understand the task better`

// Instructions is the pair of prompt strings sent to the AI provider.
type Instructions struct {
	System string
	User   string
}

// Fill substitutes parameter values into a template body. For each
// parameter whose value is non-empty after trimming, the FIRST occurrence
// of the literal placeholder [name] is replaced with the raw value.
// Placeholders with no supplied value, or an empty/whitespace-only one,
// are left in place.
func Fill(body string, parameters map[string]string) string {
	for name, value := range parameters {
		if strings.TrimSpace(value) == "" {
			continue
		}
		body = strings.Replace(body, "["+name+"]", value, 1)
	}
	return body
}

// Compose builds the system and user instructions for a generation request.
// A non-empty override takes precedence: the template and parameters are
// ignored and the model is asked to enhance the supplied text. Otherwise the
// user instruction carries the original template, the parameter mapping, and
// the filled result. Compose is total: empty inputs still produce a
// well-formed instruction pair.
func Compose(body string, parameters map[string]string, override string) Instructions {
	if override != "" {
		return Instructions{
			System: systemInstruction,
			User: fmt.Sprintf(`Please enhance and improve this custom prompt to make it more effective for ChatGPT:

"%s"

Make it more detailed, specific, and actionable while maintaining the original intent.`, override),
		}
	}

	// json.Marshal sorts map keys, so the parameter dump is deterministic.
	params, err := json.MarshalIndent(parameters, "", "  ")
	if err != nil {
		params = []byte("{}")
	}

	return Instructions{
		System: systemInstruction,
		User: fmt.Sprintf(`Please enhance this prompt template with the provided parameters to create a detailed, effective ChatGPT prompt:

Template: "%s"
Parameters: %s
Filled Template: "%s"

Generate a comprehensive, detailed prompt that will get the best results from ChatGPT.`, body, params, Fill(body, parameters)),
	}
}
