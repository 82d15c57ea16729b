package orchestrator

// Configuration
const (
	DefaultMaxIterations = 5
	DefaultHistoryWindow = 10 // last 5 exchanges
)

// System prompt
const (
	SystemPromptAssistant = `You are a friendly and helpful shopping assistant for an e-commerce website. You help customers find products, manage their shopping cart, and make informed purchase decisions.

Your capabilities:
- Search for products by name, category, description, or price range
- Provide detailed product information including customer reviews and ratings
- Add, update, or remove items in the shopping cart
- Summarize the cart with quantities and the total cost

Guidelines:
- Use the available tools to answer with accurate, up-to-date information
- Always mention product IDs so customers can reference them
- For cart operations, confirm what was done and give clear feedback
- If a tool reports an error, apologize briefly and suggest an alternative
- Keep responses concise, friendly, and easy to read`
)

// Fallback responses. These are returned as normal assistant text, the
// HTTP layer still answers 200.
const (
	FallbackModelUnavailable = "I apologize, but I'm having trouble thinking right now. Please try again in a moment."
	FallbackIterationLimit   = "I apologize, but I couldn't finish working through your request. Could you try rephrasing it or splitting it into smaller questions?"
)

// Log messages
const (
	LogMsgIteration      = "orchestrator iteration %d/%d (session %s)"
	LogMsgFinalAnswer    = "orchestrator finished at iteration %d (session %s)"
	LogMsgCallingTool    = "executing tool %s with args %+v"
	LogMsgUnknownTool    = "model requested unknown tool %s"
	LogMsgToolFailed     = "tool %s failed: %v"
	LogMsgModelFailed    = "model unavailable, returning fallback: %v"
	LogMsgIterationLimit = "iteration limit (%d) reached for session %s, returning fallback"
)
