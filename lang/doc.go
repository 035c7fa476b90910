// Package lang implements the constant declaration language.
//
// A source is a sequence of lines of the form
//
//	const NAME = EXPR;
//
// where EXPR is an integer (8080), a float (0.5), a bare identifier
// (localhost), a quoted string ("text" or 'text'), or a list
// (list(1, list(2, 3), "a")). Lists nest to any depth. The expression
// $NAME$ marks an undefined constant and always fails.
//
// [ParseString] and [ParseReader] evaluate every declaration into an ordered
// [Bindings] store. A repeated name replaces the earlier value and keeps its
// position. The first invalid line aborts the parse and no bindings are
// returned.
//
// The store renders as XML with [Bindings.FormatXML]:
//
//	<configuration>
//	  <constant name="port">8080</constant>
//	  <constant name="hosts">
//	    <list>
//	      <value>alpha</value>
//	      <value>beta</value>
//	    </list>
//	  </constant>
//	</configuration>
//
// and also as JSON, YAML, dotenv, or native declarations (see [Format]).
// Identifiers are opaque names; they are never resolved against other
// constants.
package lang
