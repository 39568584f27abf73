package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Use Case Status Report</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 4rem auto; }
  #result { margin-top: 1rem; }
  .error { color: #b00; }
</style>
</head>
<body>
<h1>Use Case Status Report</h1>
<p>Upload the Dataverse CSV export to generate the status deck.</p>
<form id="upload">
  <input type="file" name="file" accept=".csv" required>
  <button type="submit">Generate</button>
</form>
<div id="result"></div>
<script>
document.getElementById('upload').addEventListener('submit', async (e) => {
  e.preventDefault();
  const result = document.getElementById('result');
  result.textContent = 'Generating…';
  const body = new FormData(e.target);
  try {
    const resp = await fetch('/upload', { method: 'POST', body });
    const data = await resp.json();
    if (!resp.ok) {
      result.innerHTML = '<span class="error"></span>';
      result.firstChild.textContent = data.error || 'generation failed';
      return;
    }
    result.innerHTML = '<a></a>';
    result.firstChild.href = data.download_url;
    result.firstChild.textContent = 'Download report';
  } catch (err) {
    result.innerHTML = '<span class="error"></span>';
    result.firstChild.textContent = String(err);
  }
});
</script>
</body>
</html>
`
