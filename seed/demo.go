package seed

import "aceguard-demo/models"

const (
	DemoRepositoryName = "aceguard/ecommerce-platform"
	demoOwner          = "Kai Ito"
)

// DemoRepository is the repository discovered by the connect flow. It starts unscanned.
func DemoRepository() models.Repository {
	return models.Repository{Name: DemoRepositoryName, Branch: "main"}
}

// ConnectableRepositories lists the catalogue offered by the connect dialog
func ConnectableRepositories() []models.ConnectableRepository {
	return []models.ConnectableRepository{
		{Name: DemoRepositoryName, Description: "Main customer-facing e-commerce application."},
		{Name: "aceguard/legacy-monolith", Description: "Older monolithic system, scheduled for decommission."},
		{Name: "aceguard/internal-tools-api", Description: "APIs for internal administrative tools."},
		{Name: "aceguard/mobile-app-backend", Description: "Backend services for the iOS and Android apps."},
	}
}

// DemoFindings is the fixed bundle inserted by every scan
func DemoFindings() []models.Finding {
	return []models.Finding{
		{
			ID:        "F-401",
			Repo:      DemoRepositoryName,
			Component: "realtime_emotion_analysis.py",
			Path:      "/src/features/",
			Bucket:    models.BucketProhibited,
			Severity:  models.SeverityCritical,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 5(1)(a)",
				FilePath:      "src/features/realtime_emotion_analysis.py",
				ViolatingLine: 112,
				CodeSnippet: []models.CodeLine{
					{Line: 110, Content: "def analyze_customer_emotion(stream):"},
					{Line: 111, Content: "    # Use pre-trained model for emotion detection"},
					{Line: 112, Content: "    emotion = emotion_detection_model.predict(stream)"},
					{Line: 113, Content: "    if emotion in ['angry', 'sad']:"},
					{Line: 114, Content: "        trigger_retention_offer(stream.user_id)"},
				},
			},
			Analysis:    "This system uses biometric data to infer a user's emotional state in real-time. The output of this analysis is then used to trigger a 'retention_offer', which constitutes manipulating a person's behavior. This is a direct violation of the ban on AI systems that deploy subliminal techniques to materially distort a person's behavior in a manner that causes or is likely to cause physical or psychological harm.",
			Remediation: "This feature must be removed immediately and permanently from the codebase. All associated models, training data, and user-collected emotional state data must be securely and verifiably deleted. Alternative, non-invasive methods for customer retention that do not rely on prohibited AI practices should be explored.",
		},
		{
			ID:        "F-402",
			Repo:      DemoRepositoryName,
			Component: "user_profiling_engine.js",
			Path:      "/src/analytics/",
			Bucket:    models.BucketHighRisk,
			Severity:  models.SeverityHigh,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 10",
				FilePath:      "src/analytics/user_profiling_engine.js",
				ViolatingLine: 88,
				CodeSnippet: []models.CodeLine{
					{Line: 86, Content: "const buildTrainingData = (users) => {"},
					{Line: 87, Content: "  // WARNING: Unbalanced dataset, potential for bias"},
					{Line: 88, Content: "  return users.map(u => ({ features: u.profile, label: u.purchaseCategory }));"},
					{Line: 89, Content: "};"},
				},
			},
			Analysis:    "The user profiling engine is used to categorize customers, which likely influences marketing, pricing, or product recommendations. The code comment explicitly warns of an unbalanced dataset, which is a major compliance failure under Article 10. This article mandates that high-risk AI systems be trained on data that is relevant, representative, and free of errors and biases to the best extent possible. Using a known unbalanced dataset can lead to discriminatory outcomes.",
			Remediation: "A comprehensive data governance and management process must be established. Before training, the dataset must be analyzed for biases and imbalances. Implement techniques such as oversampling underrepresented categories, undersampling overrepresented ones, or using synthetic data generation (e.g., SMOTE). The data selection and balancing process must be documented and auditable.",
		},
		{
			ID:        "F-403",
			Repo:      DemoRepositoryName,
			Component: "recommendation_model.py",
			Path:      "/src/ml/",
			Bucket:    models.BucketHighRisk,
			Severity:  models.SeverityHigh,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 10(1)",
				FilePath:      "src/ml/recommendation_model.py",
				ViolatingLine: 45,
				CodeSnippet: []models.CodeLine{
					{Line: 43, Content: "def generate_recommendations(user_data):"},
					{Line: 44, Content: "    # No human oversight mechanism"},
					{Line: 45, Content: "    predictions = model.predict(user_data)"},
					{Line: 46, Content: "    return apply_business_rules(predictions)"},
				},
			},
			Analysis:    "The recommendation system influences user purchasing decisions without any human oversight mechanism. High-risk AI systems under Article 10 require human oversight for decisions that significantly impact users.",
			Remediation: "Implement a human review queue for high-value recommendations and add explainability features to show why recommendations are made.",
		},
		{
			ID:        "F-404",
			Repo:      DemoRepositoryName,
			Component: "fraud_detection.py",
			Path:      "/src/ml/",
			Bucket:    models.BucketHighRisk,
			Severity:  models.SeverityHigh,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 10(3)",
				FilePath:      "src/ml/fraud_detection.py",
				ViolatingLine: 67,
				CodeSnippet: []models.CodeLine{
					{Line: 65, Content: "fraud_score = model.predict(transaction_features)"},
					{Line: 66, Content: "if fraud_score > threshold:"},
					{Line: 67, Content: "    block_transaction(user_id)  # No appeal process"},
					{Line: 68, Content: "    return {'status': 'blocked'}"},
				},
			},
			Analysis:    "The fraud detection system blocks transactions without providing users an appeal mechanism. This violates Article 10 requirements for high-risk AI systems affecting user access to services.",
			Remediation: "Implement a user appeal process and human review queue for fraud decisions with transparency about detection criteria.",
		},
		{
			ID:        "F-405",
			Repo:      DemoRepositoryName,
			Component: "chatbot_model.py",
			Path:      "/src/nlp/",
			Bucket:    models.BucketLimited,
			Severity:  models.SeverityMedium,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 52",
				FilePath:      "src/nlp/chatbot_model.py",
				ViolatingLine: 23,
				CodeSnippet: []models.CodeLine{
					{Line: 21, Content: "def respond_to_user(message):"},
					{Line: 22, Content: "    response = chatbot_model.generate(message)"},
					{Line: 23, Content: "    return response  # No AI identification"},
					{Line: 24, Content: "}"},
				},
			},
			Analysis:    "The chatbot lacks clear AI identification as required by Article 52 for limited-risk AI systems.",
			Remediation: "Add clear AI identification to the chatbot interface and provide option to speak with human agent.",
		},
		{
			ID:        "F-406",
			Repo:      DemoRepositoryName,
			Component: "search_optimizer.py",
			Path:      "/src/search/",
			Bucket:    models.BucketLimited,
			Severity:  models.SeverityLow,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 52",
				FilePath:      "src/search/search_optimizer.py",
				ViolatingLine: 34,
				CodeSnippet: []models.CodeLine{
					{Line: 32, Content: "def optimize_search_results(query):"},
					{Line: 33, Content: "    enhanced_query = nlp_model.enhance(query)"},
					{Line: 34, Content: "    return search_engine.query(enhanced_query)  # No disclosure"},
					{Line: 35, Content: "}"},
				},
			},
			Analysis:    "The search optimization lacks transparency about AI enhancements as required by Article 52.",
			Remediation: "Add disclosure about AI-enhanced search results and implement user preference settings.",
		},
	}
}

// DemoGaps is the fixed set of pending gaps added by every scan
func DemoGaps() []models.Gap {
	gap := func(id, component, desc, deadline, next, impl string) models.Gap {
		return models.Gap{
			ID:             id,
			Repo:           DemoRepositoryName,
			Component:      component,
			Gap:            desc,
			Deadline:       deadline,
			Owner:          demoOwner,
			Status:         models.GapStatusPending,
			NextSteps:      next,
			Implementation: impl,
		}
	}
	return []models.Gap{
		gap("GAP-005", "realtime_emotion_analysis.py", "Discontinue prohibited AI practice (Art 5)", "2025-08-01",
			"Immediately remove the emotion analysis feature from production. Delete all collected biometric data and associated ML models. Implement alternative customer retention strategies that don't rely on prohibited AI practices.",
			"Use feature flags to disable the emotion analysis component. Implement data deletion scripts with audit trails. Consider A/B testing alternative retention methods like personalized recommendations based on purchase history."),
		gap("GAP-006", "user_profiling_engine.js", "Implement data bias mitigation (Art 10)", "2025-09-15",
			"Analyze training dataset for demographic imbalances. Implement data balancing techniques and bias testing framework. Add fairness metrics monitoring to the ML pipeline.",
			"Use tools like Fairlearn or AIF360 for bias detection. Implement SMOTE or similar techniques for data balancing. Add fairness metrics to model evaluation pipeline."),
		gap("GAP-007", "recommendation_system", "Add human oversight mechanism (Art 10)", "2025-10-01",
			"Implement human review queue for high-value recommendations. Add explainability features to show why recommendations are made. Create appeal process for users.",
			"Build a dashboard for human reviewers to approve/reject recommendations. Implement SHAP or LIME for model explainability. Add user feedback collection system."),
		gap("GAP-008", "fraud_detection", "Implement appeal mechanism (Art 10)", "2025-09-30",
			"Create user appeal process for blocked transactions. Implement human review queue for fraud decisions. Add transparency about fraud detection criteria.",
			"Build appeal submission form in user interface. Create admin dashboard for reviewing appeals. Implement automated notifications for appeal status updates."),
		gap("GAP-009", "chatbot_support", "Enhance AI transparency (Art 52)", "2025-11-15",
			"Add clear AI identification to chatbot interface. Provide option to speak with human agent. Implement transparency about AI capabilities and limitations.",
			"Add 'AI Assistant' badge to chatbot interface. Implement seamless handoff to human agents. Add disclosure about AI capabilities in terms of service."),
		gap("GAP-010", "search_optimization", "Add AI enhancement disclosure (Art 52)", "2025-12-01",
			"Add disclosure about AI-enhanced search results. Implement toggle for users to opt out of AI enhancements. Add transparency about how search is optimized.",
			"Add small disclosure text below search results. Implement user preference settings for AI features. Create help page explaining AI search enhancements."),
		gap("GAP-011", "dynamic_pricing", "Implement price change notifications (Art 10)", "2025-10-15",
			"Add notifications when prices change due to AI algorithms. Implement price change history tracking. Add transparency about pricing factors.",
			"Build notification system for price changes. Create price history visualization for users. Add explanatory text about pricing factors."),
		gap("GAP-012", "inventory_optimization", "Add human oversight for stock decisions (Art 10)", "2025-11-01",
			"Implement human approval for major inventory changes. Add explainability for inventory recommendations. Create audit trail for inventory decisions.",
			"Build approval workflow for inventory changes. Add SHAP explanations for inventory recommendations. Implement comprehensive logging for all inventory decisions."),
	}
}

// ScanLogs is the historical scanner output shown next to the scan history
func ScanLogs() []models.ScanLog {
	return []models.ScanLog{
		{ID: 1, Repo: "fintech-backend", Timestamp: "2025-07-18T01:12:42Z", Status: "OK", Duration: "00:11:32", DiffHash: "2ae..."},
		{ID: 2, Repo: "openai/embedding", Timestamp: "2025-07-17T14:01:10Z", Status: "OK", Duration: "00:10:58", DiffHash: "f8c..."},
		{ID: 3, Repo: "data-science-pipeline", Timestamp: "2025-07-17T02:09:11Z", Status: "OK", Duration: "00:02:15", DiffHash: "d3a..."},
	}
}
