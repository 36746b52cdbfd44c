package core

// DefaultLanguage is used when a join request names no language.
const DefaultLanguage = "javascript"

// fallbackTemplate seeds rooms created for an unrecognized language.
const fallbackTemplate = "// Start coding..."

var codeTemplates = map[string]string{
	"javascript": `// WeCode: JavaScript Environment

function main() {
  console.log("Hello, WeCode!");
}

main();`,

	"python": `# WeCode: Python Environment

print("Hello, WeCode!")`,

	"cpp": `// WeCode: C++ Environment
#include <iostream>
using namespace std;

int main() {
    cout << "Hello, WeCode!" << endl;
    return 0;
}`,

	"java": `// WeCode: Java Environment
public class Main {
    public static void main(String[] args) {
        System.out.println("Hello, WeCode!");
    }
}`,
}

// TemplateFor returns the starter code for a language, falling back to a
// generic placeholder for unknown tags.
func TemplateFor(language string) string {
	if tpl, ok := codeTemplates[language]; ok {
		return tpl
	}
	return fallbackTemplate
}
