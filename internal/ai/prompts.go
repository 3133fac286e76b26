package ai

const textClassificationPrompt = `You are an AI trained to classify real-world incidents based on speech input.
Analyze the following statement and determine:
1. The **type** of incident (choose from: "%s").
2. The **urgency level** (choose from: "low", "medium", "high", "critical").
3. A **brief explanation** justifying the classification.

Format your response as pure JSON:
{
  "incident_type": "Fire",
  "urgency": "high",
  "reason": "The speaker mentioned a house is on fire and people need immediate help."
}

Do not include any text outside of the JSON.

Speech Input: "%s"`

const audioClassificationPrompt = `You are an AI trained to recognise sounds recorded at the scene of real-world incidents.
Listen to the attached audio and determine:
1. The **sound** you hear (for example "Gunshot", "Siren", "Glass breaking", "Scream", "Explosion", "Car crash", "Fire alarm", "Background noise").
2. The **type** of incident it indicates (choose from: "%s").
3. The **urgency level** (choose from: "low", "medium", "high", "critical").
4. A **brief explanation** justifying the classification.

Format your response as pure JSON:
{
  "sound": "Siren",
  "incident_type": "Accident",
  "urgency": "high",
  "reason": "An emergency vehicle siren is approaching."
}

Do not include any text outside of the JSON.`

const safetyTipsPrompt = `Generate a JSON array of %d public safety tips that apply generally (fire, accident, natural disasters, etc.). Format:
[
  "Tip 1",
  "Tip 2",
  ...
]
Respond with only the JSON array.`
