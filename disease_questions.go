package main

// diseaseQuestionSet is the fixed list of comprehension questions asked after
// dietary advice for one disease. The number of questions is the full score.
type diseaseQuestionSet struct {
	Disease   string   `json:"disease"`
	Questions []string `json:"questions"`
}

// diseaseCatalog is listed in the order the form shows it.
var diseaseCatalog = []diseaseQuestionSet{
	{Disease: "DM", Questions: []string{
		"Knows which foods raise blood sugar quickly",
		"Can name the starch exchanges allowed per meal",
		"Chooses whole grains over refined rice and bread",
		"Limits sweetened drinks and desserts",
		"Understands the risk of skipping meals while on medication",
		"Eats fruit in measured portions",
		"Recognizes symptoms of hypoglycemia",
		"Knows what to eat when blood sugar is low",
		"Reads sugar content on food labels",
		"Keeps regular meal times",
	}},
	{Disease: "HT", Questions: []string{
		"Knows the daily sodium limit",
		"Identifies high-sodium seasonings (fish sauce, soy sauce, MSG)",
		"Avoids processed and preserved foods",
		"Tastes food before adding seasoning",
		"Increases vegetables and fruit intake",
		"Chooses low-fat protein sources",
		"Limits alcohol",
		"Reads sodium content on food labels",
	}},
	{Disease: "DLP", Questions: []string{
		"Knows foods high in saturated fat",
		"Knows foods high in cholesterol",
		"Chooses steaming, boiling or grilling over frying",
		"Avoids coconut milk based dishes",
		"Removes visible fat and poultry skin",
		"Increases dietary fiber",
		"Chooses vegetable oils low in saturated fat",
		"Limits bakery and fried snacks",
	}},
	{Disease: "CKD", Questions: []string{
		"Knows the daily protein allowance",
		"Chooses high-quality protein sources",
		"Knows the daily sodium limit",
		"Identifies high-potassium fruits and vegetables",
		"Knows how to leach potassium from vegetables",
		"Identifies high-phosphorus foods",
		"Avoids processed foods with phosphate additives",
		"Follows the fluid allowance",
		"Avoids herbal supplements without advice",
		"Gets enough energy to prevent muscle loss",
	}},
	{Disease: "Gout", Questions: []string{
		"Identifies high-purine foods",
		"Limits organ meats and seafood",
		"Avoids alcohol, especially beer",
		"Limits fructose-sweetened drinks",
		"Drinks enough water each day",
		"Keeps a healthy body weight",
	}},
	{Disease: "Heart", Questions: []string{
		"Knows the daily sodium limit",
		"Limits saturated and trans fat",
		"Chooses fish and legumes as protein",
		"Increases vegetables and whole grains",
		"Follows the fluid allowance if prescribed",
		"Eats small frequent meals",
		"Avoids caffeine and energy drinks",
		"Reads fat and sodium on food labels",
	}},
	{Disease: "Stroke", Questions: []string{
		"Knows safe food textures for swallowing",
		"Knows how to thicken liquids if prescribed",
		"Limits sodium",
		"Limits saturated fat",
		"Maintains upright position while eating",
		"Recognizes signs of choking or aspiration",
	}},
}

var diseaseIndex = func() map[string]int {
	m := make(map[string]int, len(diseaseCatalog))
	for i, d := range diseaseCatalog {
		m[d.Disease] = i
	}
	return m
}()

// questionsFor returns the question list for a disease, or an empty list when
// the disease is not in the catalog.
func questionsFor(disease string) []string {
	i, ok := diseaseIndex[disease]
	if !ok {
		return []string{}
	}
	return diseaseCatalog[i].Questions
}

func isKnownDisease(disease string) bool {
	_, ok := diseaseIndex[disease]
	return ok
}
