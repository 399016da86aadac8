package seed

import "aceguard-demo/models"

const sampleExecutiveSummary = `EU AI Act compliance scan of aceguard/ecommerce-platform reveals CRITICAL violations requiring immediate action.

**Top Risk**: Prohibited AI practice detected in real-time emotion analysis (Art 5(1)(a)) - potential €35M fine.

**72h Actions Required**:
- Discontinue emotion analysis feature immediately
- Halt all data processing for user profiling engine
- Initiate data deletion procedures for collected biometric data

**Financial Exposure**: €50M total potential fines (€35M prohibited + €15M high-risk violations).

**Compliance Score**: 42% - Critical risk level requiring immediate remediation.

**Key Findings**: 8 AI components identified, 1 prohibited practice, 3 high-risk systems, 4 limited-risk components.

**Immediate Priority**: Address prohibited emotion analysis within 72 hours to avoid regulatory action.`

// SampleReport is the AceGuard report for the demo repository
func SampleReport() models.AceGuardReport {
	return models.AceGuardReport{
		ExecutiveSummary: sampleExecutiveSummary,
		Inventory: []models.InventoryItem{
			{Component: "realtime_emotion_analysis", Paths: []string{"src/features/realtime_emotion_analysis.py", "src/models/emotion_detection.py"}, Lang: "Python", PersonalData: "Y", RiskBucket: "Prohibited"},
			{Component: "user_profiling_engine", Paths: []string{"src/analytics/user_profiling_engine.js", "src/models/user_classifier.py"}, Lang: "JavaScript/Python", PersonalData: "Y", RiskBucket: "High-Risk"},
			{Component: "recommendation_system", Paths: []string{"src/recommendations/engine.py", "src/ml/recommendation_model.py"}, Lang: "Python", PersonalData: "Y", RiskBucket: "High-Risk"},
			{Component: "fraud_detection", Paths: []string{"src/security/fraud_detection.py", "src/ml/fraud_model.pkl"}, Lang: "Python", PersonalData: "Y", RiskBucket: "High-Risk"},
			{Component: "chatbot_support", Paths: []string{"src/support/chatbot.py", "src/nlp/chatbot_model.py"}, Lang: "Python", PersonalData: "N", RiskBucket: "Limited"},
			{Component: "search_optimization", Paths: []string{"src/search/optimizer.py"}, Lang: "Python", PersonalData: "N", RiskBucket: "Limited"},
			{Component: "spam_filter", Paths: []string{"src/security/spam_filter.py"}, Lang: "Python", PersonalData: "N", RiskBucket: "Minimal"},
			{Component: "image_compression", Paths: []string{"src/utils/image_compression.py"}, Lang: "Python", PersonalData: "N", RiskBucket: "Minimal"},
		},
		RiskBucketJustification: []models.RiskJustification{
			{
				Component:                  "realtime_emotion_analysis",
				Article:                    "Art 5(1)(a)",
				Evidence:                   "emotion_detection_model.predict(stream)\nif emotion in ['angry', 'sad']:\n    trigger_retention_offer(stream.user_id)",
				ReasonLowerBucketsRejected: "Uses biometric data to manipulate behavior - clear prohibited practice under Art 5(1)(a)",
			},
			{
				Component:                  "user_profiling_engine",
				Article:                    "Art 10(2)",
				Evidence:                   "return users.map(u => ({ features: u.profile, label: u.purchaseCategory }));\n// WARNING: Unbalanced dataset, potential for bias",
				ReasonLowerBucketsRejected: "Influences user decisions with known biased data - high-risk under Art 10",
			},
			{
				Component:                  "recommendation_system",
				Article:                    "Art 10(1)",
				Evidence:                   "def generate_recommendations(user_data):\n    predictions = model.predict(user_data)\n    return apply_business_rules(predictions)",
				ReasonLowerBucketsRejected: "Influences user purchasing decisions with personal data - high-risk under Art 10",
			},
			{
				Component:                  "fraud_detection",
				Article:                    "Art 10(3)",
				Evidence:                   "fraud_score = model.predict(transaction_features)\nif fraud_score > threshold:\n    block_transaction(user_id)",
				ReasonLowerBucketsRejected: "Automated decision-making affecting user access to services - high-risk under Art 10",
			},
			{
				Component:                  "chatbot_support",
				Article:                    "Art 52",
				Evidence:                   "def respond_to_user(message):\n    response = chatbot_model.generate(message)\n    return f'AI Assistant: {response}'",
				ReasonLowerBucketsRejected: "User-facing AI system requiring transparency - limited risk under Art 52",
			},
			{
				Component:                  "search_optimization",
				Article:                    "Art 52",
				Evidence:                   "def optimize_search_results(query):\n    enhanced_query = nlp_model.enhance(query)\n    return search_engine.query(enhanced_query)",
				ReasonLowerBucketsRejected: "AI-enhanced search requiring transparency - limited risk under Art 52",
			},
			{
				Component:                  "spam_filter",
				Article:                    "Voluntary",
				Evidence:                   "def classify_email(email_content):\n    return spam_model.predict(email_content) > 0.8",
				ReasonLowerBucketsRejected: "Standard spam filtering - minimal risk, voluntary compliance recommended",
			},
			{
				Component:                  "image_compression",
				Article:                    "Voluntary",
				Evidence:                   "def compress_image(image):\n    return compression_model.process(image)",
				ReasonLowerBucketsRejected: "Utility function with no user impact - minimal risk, voluntary compliance recommended",
			},
		},
		GapAnalysis: []models.GapAnalysis{
			{Component: "realtime_emotion_analysis", Gap: "Prohibited biometric behavior manipulation", Severity: "High", Fix: "Remove emotion analysis feature and delete all collected data", Deadline: "2025-02-01"},
			{Component: "user_profiling_engine", Gap: "Unbalanced training dataset causing bias", Severity: "High", Fix: "Implement data balancing and bias testing framework", Deadline: "2025-03-15"},
			{Component: "recommendation_system", Gap: "Missing human oversight for automated decisions", Severity: "High", Fix: "Add human review mechanism for high-value recommendations", Deadline: "2025-04-01"},
			{Component: "fraud_detection", Gap: "No appeal mechanism for blocked transactions", Severity: "Medium", Fix: "Implement user appeal process and human review queue", Deadline: "2025-04-15"},
			{Component: "chatbot_support", Gap: "Insufficient AI system labeling", Severity: "Medium", Fix: "Add clear AI identification and human agent option", Deadline: "2025-05-01"},
			{Component: "search_optimization", Gap: "Missing transparency about AI enhancement", Severity: "Low", Fix: "Add disclosure about AI-enhanced search results", Deadline: "2025-05-15"},
		},
		Appendices: models.ReportAppendices{
			UnknownAmbiguous: []models.UnknownItem{
				{Component: "mystery_ml_module", Path: "src/legacy/ml_utils.py", Reason: "Unclear purpose, no documentation, potential AI usage", Recommendation: "Code review required to determine if AI system and risk classification"},
				{Component: "data_processor", Path: "src/data/processor.py", Reason: "Complex data transformation logic, may involve ML", Recommendation: "Static analysis needed to identify ML components"},
			},
			SearchLog: []models.SearchLogEntry{
				{Pattern: "torch", Matches: 3, Context: "PyTorch imports found in emotion analysis and recommendation modules"},
				{Pattern: ".onnx", Matches: 1, Context: "ONNX model file in fraud detection component"},
				{Pattern: "manual_override", Matches: 0, Context: "No manual override mechanisms found - compliance gap"},
				{Pattern: "predict", Matches: 8, Context: "ML prediction calls across multiple components"},
				{Pattern: "model.fit", Matches: 2, Context: "Model training code in profiling and recommendation engines"},
				{Pattern: "personal_data", Matches: 5, Context: "Personal data processing identified in multiple components"},
			},
			CSVExport: []models.CSVExportItem{
				{Module: "realtime_emotion_analysis", RiskLevel: "Prohibited", PersonalData: "Y", Mitigation: "Remove feature and delete data", NextReview: "2025-02-01"},
				{Module: "user_profiling_engine", RiskLevel: "High-Risk", PersonalData: "Y", Mitigation: "Implement bias testing and data governance", NextReview: "2025-03-15"},
				{Module: "recommendation_system", RiskLevel: "High-Risk", PersonalData: "Y", Mitigation: "Add human oversight and appeal mechanism", NextReview: "2025-04-01"},
				{Module: "fraud_detection", RiskLevel: "High-Risk", PersonalData: "Y", Mitigation: "Implement appeal process and human review", NextReview: "2025-04-15"},
				{Module: "chatbot_support", RiskLevel: "Limited", PersonalData: "N", Mitigation: "Add AI labeling and human agent option", NextReview: "2025-05-01"},
				{Module: "search_optimization", RiskLevel: "Limited", PersonalData: "N", Mitigation: "Add transparency disclosure", NextReview: "2025-05-15"},
				{Module: "spam_filter", RiskLevel: "Minimal", PersonalData: "N", Mitigation: "Voluntary compliance monitoring", NextReview: "2025-06-01"},
				{Module: "image_compression", RiskLevel: "Minimal", PersonalData: "N", Mitigation: "Voluntary compliance monitoring", NextReview: "2025-06-01"},
			},
		},
		Metadata: models.ReportMetadata{
			ScanDate:        "2025-01-27T10:30:00Z",
			Repository:      DemoRepositoryName,
			TotalComponents: 8,
			ScanDuration:    "00:15:32",
			AIModel:         "AceGuard-Scan-v2.1",
		},
	}
}

// ComplianceData is the input of the EU AI Act compliance report
func ComplianceData() models.ComplianceData {
	return models.ComplianceData{
		Repository: models.ComplianceRepository{
			Name:            "ecommerce-platform",
			Description:     "Main customer-facing e-commerce application with AI-powered features",
			LastScan:        "2025-01-27T10:30:00Z",
			TotalComponents: 24,
			AIComponents:    8,
		},
		ComplianceScore: models.ComplianceScore{
			Overall:   42,
			Breakdown: map[string]int{"prohibited": 0, "high": 35, "limited": 78, "minimal": 95},
		},
		RiskDistribution: models.RiskDistribution{Prohibited: 1, High: 3, Limited: 2, Minimal: 2},
		Metrics: []models.ComplianceMetric{
			{Name: "Data Governance", Score: 45, Status: "Critical", Issues: []string{"Unbalanced training datasets", "Missing data validation", "Insufficient bias testing"}},
			{Name: "Transparency", Score: 60, Status: "High Risk", Issues: []string{"Incomplete user notifications", "Missing AI system labeling"}},
			{Name: "Human Oversight", Score: 30, Status: "Critical", Issues: []string{"No human review mechanisms", "Automated decision-making without oversight"}},
			{Name: "Risk Management", Score: 25, Status: "Critical", Issues: []string{"Missing risk assessments", "No monitoring systems", "Inadequate documentation"}},
		},
		FinancialImpact: models.FinancialImpact{
			PotentialFines:  models.PotentialFines{Prohibited: 35000000, High: 15000000, Total: 50000000},
			ComplianceCosts: models.ComplianceCosts{Immediate: 250000, Annual: 500000},
		},
		ActionItems: []models.ActionItem{
			{ID: "AI-001", Priority: "Critical", Title: "Discontinue Prohibited Emotion Analysis", Description: "Remove real-time emotion analysis feature that violates Article 5(1)(a)", Deadline: "2025-02-01", Owner: "AI Team Lead", Status: "Not Started", EstimatedEffort: "2 weeks"},
			{ID: "AI-002", Priority: "High", Title: "Implement Data Governance Framework", Description: "Establish comprehensive data validation, bias testing, and quality controls", Deadline: "2025-03-15", Owner: "Data Science Team", Status: "Not Started", EstimatedEffort: "6 weeks"},
			{ID: "AI-003", Priority: "High", Title: "Add Human Oversight Mechanisms", Description: "Implement human review processes for all AI-driven decisions", Deadline: "2025-04-01", Owner: "Product Team", Status: "Not Started", EstimatedEffort: "4 weeks"},
			{ID: "AI-004", Priority: "Medium", Title: "Enhance Transparency Notifications", Description: "Add clear AI system labeling and user notifications", Deadline: "2025-05-01", Owner: "UX Team", Status: "Not Started", EstimatedEffort: "3 weeks"},
		},
		Timeline: models.ComplianceTimeline{
			Immediate:  []string{"Discontinue prohibited practices", "Begin risk assessment"},
			ShortTerm:  []string{"Implement data governance", "Add human oversight"},
			MediumTerm: []string{"Complete compliance framework", "Conduct external audit"},
			LongTerm:   []string{"Maintain compliance monitoring", "Regular compliance reviews"},
		},
	}
}

// RiskTiers describes the four EU AI Act tiers in descending severity
func RiskTiers() []models.RiskTier {
	return []models.RiskTier{
		{
			Key:            "prohibited",
			Title:          "Prohibited AI Practices",
			Description:    "These AI systems are considered a clear threat to the safety, livelihoods, and rights of people and are banned under the EU AI Act.",
			Fine:           "Up to €35 million or 7% of the total worldwide annual turnover, whichever is higher.",
			Recommendation: "Cease development and deployment of this feature immediately. All related data processing must be halted, and collected data should be securely deleted in accordance with data protection regulations.",
		},
		{
			Key:            "high",
			Title:          "High-Risk AI Systems",
			Description:    "AI systems identified as high-risk are subject to strict obligations before they can be put on the market, including risk assessments, high-quality data sets, and human oversight.",
			Fine:           "Up to €15 million or 3% of the total worldwide annual turnover, whichever is higher.",
			Recommendation: "Implement a comprehensive risk management system, ensure data governance and quality, provide clear information to users, and establish robust human oversight mechanisms.",
		},
		{
			Key:            "limited",
			Title:          "Limited-Risk AI Systems",
			Description:    "For AI systems with limited risk, such as chatbots, the Act imposes transparency obligations, ensuring users know they are interacting with a machine.",
			Fine:           "Fines for non-compliance with transparency obligations can apply.",
			Recommendation: "Ensure all user-facing AI interactions are clearly labeled as such. Provide options for users to interact with a human agent where applicable.",
		},
		{
			Key:            "minimal",
			Title:          "Minimal-Risk AI Systems",
			Description:    "The vast majority of AI systems fall into this category (e.g., spam filters, AI in video games). The Act does not impose obligations for these systems, but encourages voluntary codes of conduct.",
			Fine:           "No specific fines, but adherence to best practices is recommended to maintain user trust.",
			Recommendation: "Continue monitoring for any change in risk classification and adhere to voluntary codes of conduct.",
		},
	}
}
