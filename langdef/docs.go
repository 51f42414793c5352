/*
Package langdef converts textual grammar description to a table of named rules (parser.Rules).

Grammar is described using language that resembles EBNF. Self-definition of this language is:
*/
//  Whitespace = /\s+/;
//  SingleLineComment = /\/\/[^\n]*/;
//  MultiLineComment = /\/\*(?:[^*]|\*+[^*\/])*\*+\//;
//  Ignore = Whitespace | SingleLineComment | MultiLineComment;
//  NonTerminal = /[a-z_][a-z0-9_]*(?:\.[a-z_][a-z0-9_]*)*/i;
//  String = '"' /(?:[^"\\]|\\.)*/ '"' | "'" /(?:[^'\\]|\\.)*/ "'";
//  Regex = "/" /(?:[^\/\\]|\\.)+/ "/" /(?:i\b)?/;
//
//  ignore Ignore {
//    Grammar = StatementBlock /$/;
//    StatementBlock = (Definition | SpecialBlock)*;
//    Definition = NonTerminal "=" (Branch Block? | Block) ";";
//    Block = "{" StatementBlock "}";
//    SpecialBlock = SpecialItem+ Block;
//    SpecialItem = "ignore" Branch ("," Branch)* | "noignore" | "collapse";
//    Branch = Concat ("|" Concat)*;
//    Concat = Modifier+;
//    Modifier = Term /[?*+]/?;
//    Term = String | Regex | NonTerminal | "(" Branch ")";
//  }
//
// Description may contain line comments starting with // and block comments enclosed in /* and */.
// Whitespace and comments are insignificant.
/*
Rule definition has a form:
   Name = alternatives ;
   Name = alternatives { nested definitions } ;
   Name = { nested definitions } ;

Names are case-sensitive sequences of latin letters, digits, and underscores, not starting with a digit.
Rules defined in a nested block belong to the namespace of the enclosing rule, e.g. Integer defined inside
Value is named Value.Integer. A reference is looked up in the namespace it is written in, then in every
enclosing namespace, so nested rules may use short names of their siblings and of all outer rules.
A reference may also contain a full dot-separated name. Rules may be referenced before they are defined.

Alternatives are separated with pipe (|) symbol, alternative is a sequence of one or more terms.
The longest matching alternative wins; of equally long ones the first wins.
A term is a string literal, a regular expression literal, a rule name, or alternatives enclosed in parentheses.
A term may be followed with a modifier:
   ?  match 0 or 1 time
   *  match 0 or more times
   +  match 1 or more times

String literal is any sequence of symbols delimited with either single (') or double (") quote signs.
Backslash escape sequences \\, \', \", \r, \n, and \t are allowed, other sequences are errors.
An empty string matches nothing and always succeeds.

Regular expression literal is a RE2 regular expression delimited with slashes (/), optionally followed
with i flag (ignore case). To use slashes inside regexp escape them with backslashes (\/).
Expression is anchored at the current position, it does not have to match the rest of the input.
Regular expression must not start with asterisk, escape it instead.

Defining a rule more than once adds new definition as an alternative, e.g.
   Value = Integer; Value = Float;
is the same as
   Value = Integer | Float;

Special block has a form:
   directive {directive} { definitions }

Directives:
   ignore A, B     skip any number of A or B matches before, after, and between terms of rules
                   defined in the block; nested ignore blocks add to the outer ones
   noignore        disable skipping for rules defined in the block
   collapse        rule matched with a single named child is replaced with the child in the result tree

Settings are applied to rules and references written inside the block.

The first rule defined at top level is the root one (see Root).
*/
package langdef
