package diagram

import "github.com/starford/canvas/internal/models"

const defaultExample = `flowchart TD
    A[Start] --> B[End]`

// examples are the canned bodies returned by the generator stub.
var examples = map[models.DiagramType]string{
	models.DiagramFlowchart: `flowchart TD
    A[User Request] --> B{Authenticated?}
    B -->|Yes| C[Load Dashboard]
    B -->|No| D[Show Login]
    D --> E[Submit Credentials]
    E --> B
    C --> F[Render Canvas]`,

	models.DiagramSequence: `sequenceDiagram
    participant U as User
    participant C as Canvas
    participant S as Diagram Service
    U->>C: Describe diagram
    C->>S: Generate from prompt
    S-->>C: Diagram code
    C-->>U: Rendered diagram`,

	models.DiagramClass: `classDiagram
    class Canvas {
        +Node[] nodes
        +Edge[] edges
        +autoLayout()
    }
    class Node {
        +string id
        +Position position
    }
    class Edge {
        +string source
        +string target
    }
    Canvas "1" --> "*" Node
    Canvas "1" --> "*" Edge`,

	models.DiagramER: `erDiagram
    CANVAS ||--o{ NODE : contains
    CANVAS ||--o{ EDGE : contains
    NODE ||--o{ EDGE : "source of"
    NODE ||--o{ EDGE : "target of"`,
}

// exampleFor returns the canned body for t, or the two-node default.
func exampleFor(t models.DiagramType) string {
	if code, ok := examples[t]; ok {
		return code
	}
	return defaultExample
}
