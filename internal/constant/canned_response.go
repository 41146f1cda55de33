package constant

// Use-case keys for degraded completion responses.
const (
	UseCaseChat         = "chat"
	UseCaseSummary      = "summary"
	UseCaseRiskAnalysis = "risk_analysis"
	UseCaseQuery        = "query"
)

const (
	CannedChatResponse = "I'm sorry, but I'm currently unable to access the AI model due to authentication or rate limit issues. Please check your API key on OpenRouter. For now, here's a sample response: **Key Advice:** Review all clauses carefully, especially termination and liability sections."

	CannedSummaryResponse = `## Parties Involved:
- Party A: [Extracted from document, e.g., the company providing services]
- Party B: [Extracted from document, e.g., the client receiving services]

## Key Terms:
- Duration: [e.g., 1 year from start date]
- Compensation: [e.g., $10,000 paid monthly]

## Obligations:
- Party A must provide the agreed services on time.
- Party B must make payments as scheduled.

## Potential Risks:
- Late payments could lead to delays in services.
- Breaking the agreement might result in legal fees.

## Next Steps:
- Review the full contract with a lawyer.
- Sign and return by the deadline.`

	CannedRiskAnalysisResponse = `
            <div style="text-align: center; margin-bottom: 15px;"><span style="background-color: red; color: white; padding: 8px 16px; border-radius: 20px; font-weight: bold; font-size: 18px; display: inline-block; text-align: center;">High Risks</span></div>
            <div style="background-color: rgba(255,0,0,0.05); padding: 15px; border-radius: 8px; margin-bottom: 25px; border-left: 4px solid red; text-align: left;">
              <ul style="margin: 0; padding-left: 20px; list-style-type: disc;">
                <li>Potential breach of confidentiality: Review <span style="background-color: red; color: white; padding: 2px 4px; border-radius: 3px; font-weight: bold;">non-disclosure clauses</span></li>
              </ul>
            </div>
            <div style="height: 20px;"></div>

            <div style="text-align: center; margin-bottom: 15px;"><span style="background-color: orange; color: white; padding: 8px 16px; border-radius: 20px; font-weight: bold; font-size: 18px; display: inline-block; text-align: center;">Medium Risks</span></div>
            <div style="background-color: rgba(255,165,0,0.05); padding: 15px; border-radius: 8px; margin-bottom: 25px; border-left: 4px solid orange; text-align: left;">
              <ul style="margin: 0; padding-left: 20px; list-style-type: disc;">
                <li>Payment terms may lead to disputes with <span style="background-color: orange; color: white; padding: 2px 4px; border-radius: 3px; font-weight: bold;">payment terms</span></li>
              </ul>
            </div>
            <div style="height: 20px;"></div>

            <div style="text-align: center; margin-bottom: 15px;"><span style="background-color: green; color: white; padding: 8px 16px; border-radius: 20px; font-weight: bold; font-size: 18px; display: inline-block; text-align: center;">Low Risks</span></div>
            <div style="background-color: rgba(0,128,0,0.05); padding: 15px; border-radius: 8px; margin-bottom: 25px; border-left: 4px solid green; text-align: left;">
              <ul style="margin: 0; padding-left: 20px; list-style-type: disc;">
                <li>Standard <span style="background-color: green; color: white; padding: 2px 4px; border-radius: 3px; font-weight: bold;">termination clauses</span></li>
              </ul>
            </div>
            `

	CannedQueryResponse = "I'm sorry, but I'm currently unable to access the AI model due to authentication or rate limit issues. Please check your API key on OpenRouter."

	CannedGenericResponse = "AI service temporarily unavailable. Please try again later."
)

// CannedResponses maps use-case keys to their degraded responses for the
// completion failover client.
func CannedResponses() map[string]string {
	return map[string]string{
		UseCaseChat:         CannedChatResponse,
		UseCaseSummary:      CannedSummaryResponse,
		UseCaseRiskAnalysis: CannedRiskAnalysisResponse,
		UseCaseQuery:        CannedQueryResponse,
	}
}
