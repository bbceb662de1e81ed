package template

// skillTemplate renders SKILL.md.
const skillTemplate = `---
name: {{.Name}}
description: {{.Description}}
license: MIT
metadata:
  version: "1.0"
  author: {{.Author}}
  created: "{{.Created}}"
---

# {{.Title}}

{{.Description}}

## When to Use

- [Describe trigger condition 1]
- [Describe trigger condition 2]

## Process

1. [Step one]
2. [Step two]
3. [Step three]

## Examples

### Example 1: [Scenario]

` + "```" + `
[Input/command example]
` + "```" + `

Expected output:
` + "```" + `
[Output example]
` + "```" + `

## Guidelines

- [Guideline 1]
- [Guideline 2]
- [Guideline 3]

## Related Skills

- [List related skills if any]
`

// scriptTemplate renders scripts/helper.py.
const scriptTemplate = `#!/usr/bin/env python3
"""
Helper script for {{.Name}} skill.

Usage:
    python helper.py [args]
"""

import sys

def main():
    print("Hello from {{.Name}} helper script!")
    print(f"Arguments: {sys.argv[1:]}")

if __name__ == "__main__":
    main()
`

// referenceTemplate renders references/DETAILS.md.
const referenceTemplate = `# {{.Title}} - Detailed Reference

This file contains detailed documentation that the agent loads on-demand.

## Section 1

[Add detailed content here]

## Section 2

[Add more content here]
`
