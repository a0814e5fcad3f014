package agent

// SystemPrompt instructs the model to reply with a single JSON decision.
// The answer argument is asked for last so a reply with raw code in it can
// still be repaired.
const SystemPrompt = `You must complete a task using the documentation pages you are given.
You may open another page to learn more, ask the user a clarifying question, or complete the task now.

Respond with a JSON object of the form:

` + "```json" + `
{
    "reasoning": "Why you are opening a page, asking a question or completing the task now",
    "action": "'complete_task', 'open_pages' or 'ask_question'",
    "arguments": {
        "question": "A question that clarifies the task",
        "url": "The URL of the page to open",
        "answer": "Your answer to the task"
    }
}
` + "```" + `

Provide "answer" only when completing the task, "url" only when opening a page,
and "question" only when asking a question. "url" may also be a list of URLs.

Escape the answer so the JSON can be parsed.
If the answer is a code block it must contain only code and use \\n for new lines.

For example:
{
    "reasoning": "I have all the information I need to complete the task",
    "action": "complete_task",
    "arguments": {
        "answer": "import autofit as af\\n\\nmodel = af.Model(Gaussian)"
    }
}
`
